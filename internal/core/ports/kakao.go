package ports

import (
	"context"
	"time"

	"github.com/selectshop/shop-api/internal/core/domain"
)

// KakaoClient performs the two outbound provider calls of the
// authorization-code flow. Each call is bounded by a timeout and honors
// cancellation of the enclosing request context.
type KakaoClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*domain.KakaoProfile, error)

	// AuthorizeURL builds the provider URL a browser is redirected to when
	// starting a login. Pure string construction, no network.
	AuthorizeURL(state string) string
}

// KakaoService runs the full callback flow: code exchange, profile fetch,
// account provisioning, token issuance.
type KakaoService interface {
	Login(ctx context.Context, code string) (string, error)
}

// Provisioner finds or creates the local account behind a Kakao profile.
type Provisioner interface {
	Provision(ctx context.Context, profile *domain.KakaoProfile) (*domain.User, error)
}

// StateStore holds one-shot login state nonces for the authorize redirect.
// Consume removes the state so it cannot be replayed.
type StateStore interface {
	Issue(ctx context.Context, ttl time.Duration) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}
