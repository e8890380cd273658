package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	"github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, shop_id, name, description, price, is_active, image_url, deleted_at, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	if err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price,
		&p.IsActive, &p.ImageURL, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, shop_id, name, description, price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, p.ID, p.ShopID, p.Name, p.Description, p.Price, p.IsActive)

	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanProduct(row)
}

func (r *ProductRepository) ListByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE shop_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) ListActiveByShopSlug(ctx context.Context, slug string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.shop_id, p.name, p.description, p.price, p.is_active,
		       p.image_url, p.deleted_at, p.created_at, p.updated_at
		FROM products p
		JOIN shops s ON s.id = p.shop_id
		WHERE s.slug = $1 AND s.deleted_at IS NULL
		  AND p.is_active AND p.deleted_at IS NULL
		ORDER BY p.name ASC
	`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ShopIDOf deliberately ignores deleted_at: order items keep pointing at
// products after deletion and the seller must stay resolvable.
func (r *ProductRepository) ShopIDOf(ctx context.Context, productID string) (string, error) {
	var shopID string
	err := r.pool.QueryRow(ctx, `
		SELECT shop_id FROM products WHERE id = $1
	`, productID).Scan(&shopID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	return shopID, err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, is_active = $4, image_url = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`, p.Name, p.Description, p.Price, p.IsActive, p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]entity.Product, error) {
	products := make([]entity.Product, 0)
	for rows.Next() {
		p := entity.Product{}
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price,
			&p.IsActive, &p.ImageURL, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
