package ports

import (
	"context"

	"github.com/selectshop/shop-api/internal/core/domain"
)

// UserRepository defines the persistence interface for local accounts.
// Uniqueness of username and kakao id is enforced by the storage layer.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByKakaoID(ctx context.Context, kakaoID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
