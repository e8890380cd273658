package repository

import (
	"context"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
)

// ShopRepository defines store operations over shops. Every query is scoped
// to non-deleted rows; soft-deleted shops are invisible except to SoftDelete
// itself, which flips the marker.
type ShopRepository interface {
	Create(ctx context.Context, s *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	GetByOwner(ctx context.Context, userID string) (*entity.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Shop, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]entity.Shop, error)
	SoftDelete(ctx context.Context, id string) error
}
