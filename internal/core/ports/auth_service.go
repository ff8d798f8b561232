package ports

import (
	"context"

	"github.com/selectshop/shop-api/internal/core/domain"
)

// SignupInput carries the fields bound from a signup submission.
type SignupInput struct {
	Username   string
	Password   string
	Email      string
	Admin      bool
	AdminToken string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
