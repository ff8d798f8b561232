package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/core/ports"
)

// AuthService implements local signup and login.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	adminToken string
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, adminToken string) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, adminToken: adminToken}
}

// Signup creates a local account with a bcrypt-hashed password. The admin
// role is granted only when the submitted admin token matches the configured
// one; a mismatch rejects the signup rather than silently downgrading.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleUser
	if in.Admin {
		if s.adminToken == "" || in.AdminToken != s.adminToken {
			return nil, domain.ErrInvalidCredentials
		}
		role = domain.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login validates local credentials and issues a credential on success.
// Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
