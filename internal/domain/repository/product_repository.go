package repository

import (
	"context"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
)

// ProductRepository defines store operations over products, all scoped to
// non-deleted rows.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]entity.Product, error)
	// ListActiveByShopSlug returns active products of the non-deleted shop
	// with the given slug; empty when the shop does not exist.
	ListActiveByShopSlug(ctx context.Context, slug string) ([]entity.Product, error)
	// ShopIDOf resolves the owning shop of a product, including soft-deleted
	// products, so order snapshots stay attributable to their seller.
	ShopIDOf(ctx context.Context, productID string) (string, error)
	Update(ctx context.Context, p *entity.Product) error
	SoftDelete(ctx context.Context, id string) error
}
