// Package kakao implements the outbound half of the Kakao
// authorization-code flow: code-for-token exchange against the auth server
// and token-for-profile fetch against the API server. Both calls are bounded
// by a client timeout and cancelled with the enclosing request context.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/selectshop/shop-api/internal/core/domain"
)

const (
	DefaultTokenURL   = "https://kauth.kakao.com/oauth/token"
	DefaultProfileURL = "https://kapi.kakao.com/v2/user/me"

	defaultTimeout = 5 * time.Second
)

var ErrUnreachable = errors.New("kakao unreachable")
var ErrRejected = errors.New("kakao rejected the request")
var ErrInvalidResponse = errors.New("kakao response invalid")
var ErrProfileIncomplete = errors.New("kakao profile incomplete")

// IsProviderError reports whether err originated from the provider calls
// rather than from storage or token issuance.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrRejected) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrProfileIncomplete)
}

// Config captures the provider settings fixed at process start.
type Config struct {
	ClientID    string
	RedirectURI string
	TokenURL    string
	ProfileURL  string
	Timeout     time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = DefaultProfileURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: missing access_token", ErrInvalidResponse)
	}
	return payload.AccessToken, nil
}

// FetchProfile retrieves the user's Kakao identity with a bearer token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*domain.KakaoProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
		KakaoAccount struct {
			Email string `json:"email"`
		} `json:"kakao_account"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if payload.ID == 0 {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidResponse)
	}
	if payload.Properties.Nickname == "" || payload.KakaoAccount.Email == "" {
		return nil, ErrProfileIncomplete
	}

	return &domain.KakaoProfile{
		ID:       payload.ID,
		Nickname: payload.Properties.Nickname,
		Email:    payload.KakaoAccount.Email,
	}, nil
}

// do executes a request and classifies the outcome: transport failures are
// ErrUnreachable, non-2xx statuses are ErrRejected.
func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrRejected, res.StatusCode)
	}
	return body, nil
}

// AuthorizeURL builds the URL the browser is redirected to when starting a
// Kakao login.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	if state != "" {
		q.Set("state", state)
	}
	return "https://kauth.kakao.com/oauth/authorize?" + q.Encode()
}
