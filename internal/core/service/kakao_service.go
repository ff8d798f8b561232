package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/selectshop/shop-api/internal/core/ports"
)

// KakaoService orchestrates the authorization-code callback: exchange the
// code, fetch the profile, provision the account, issue a credential. A
// failed provider call aborts the flow before any account lookup or mutation.
type KakaoService struct {
	client      ports.KakaoClient
	provisioner ports.Provisioner
	tokens      ports.TokenService
	log         zerolog.Logger
}

func NewKakaoService(client ports.KakaoClient, provisioner ports.Provisioner, tokens ports.TokenService, log zerolog.Logger) *KakaoService {
	return &KakaoService{client: client, provisioner: provisioner, tokens: tokens, log: log}
}

func (s *KakaoService) Login(ctx context.Context, code string) (string, error) {
	accessToken, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	profile, err := s.client.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", err
	}

	user, err := s.provisioner.Provision(ctx, profile)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Int64("kakao_id", profile.ID).
		Str("username", user.Username).
		Msg("kakao login")

	return s.tokens.Issue(user.Username, user.Role)
}
