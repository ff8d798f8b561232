package ports

import (
	"context"

	"github.com/selectshop/shop-api/internal/core/domain"
)

// FolderRepository persists a user's product folders.
type FolderRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]domain.Folder, error)
	Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error)
}
