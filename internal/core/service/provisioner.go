package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/core/ports"
)

// AccountProvisioner finds or creates the local account behind a Kakao
// profile. Lookup precedence is fixed: kakao id first, then email, then a
// fresh account.
type AccountProvisioner struct {
	repo ports.UserRepository
}

func NewAccountProvisioner(repo ports.UserRepository) *AccountProvisioner {
	return &AccountProvisioner{repo: repo}
}

// Provision resolves a profile to an account.
//
// An account matched by kakao id is returned unchanged. An account matched
// only by email gets the kakao id attached and saved, linking the external
// identity to the pre-existing signup. Otherwise a new account is created
// with the user role and a random bcrypt-hashed password — such accounts can
// only ever log in through Kakao.
func (p *AccountProvisioner) Provision(ctx context.Context, profile *domain.KakaoProfile) (*domain.User, error) {
	user, err := p.repo.FindByKakaoID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err = p.repo.FindByEmail(ctx, profile.Email)
	if err == nil {
		user.KakaoID = profile.ID
		user.UpdatedAt = time.Now().UTC()
		return p.repo.Save(ctx, user)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return p.repo.Create(ctx, &domain.User{
		Username:     profile.Nickname,
		PasswordHash: string(hash),
		Email:        profile.Email,
		Role:         domain.RoleUser,
		KakaoID:      profile.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
