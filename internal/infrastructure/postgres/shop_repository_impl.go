package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	"github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

type ShopRepository struct {
	pool *pgxpool.Pool
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

const shopColumns = `id, user_id, name, slug, description, contact_email, phone, deleted_at, created_at, updated_at`

func scanShop(row pgx.Row) (*entity.Shop, error) {
	s := &entity.Shop{}
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Slug, &s.Description,
		&s.ContactEmail, &s.Phone, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ShopRepository) Create(ctx context.Context, s *entity.Shop) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shops (id, user_id, name, slug, description, contact_email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, s.ID, s.UserID, s.Name, s.Slug, s.Description, s.ContactEmail, s.Phone)

	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return translateUnique(err)
	}
	return nil
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanShop(row)
}

func (r *ShopRepository) GetByOwner(ctx context.Context, userID string) (*entity.Shop, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE user_id = $1 AND deleted_at IS NULL
	`, userID)
	return scanShop(row)
}

func (r *ShopRepository) GetBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE slug = $1 AND deleted_at IS NULL
	`, slug)
	return scanShop(row)
}

func (r *ShopRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM shops WHERE slug = $1 AND deleted_at IS NULL)
	`, slug).Scan(&exists)
	return exists, err
}

func (r *ShopRepository) List(ctx context.Context) ([]entity.Shop, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := make([]entity.Shop, 0)
	for rows.Next() {
		s := entity.Shop{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Slug, &s.Description,
			&s.ContactEmail, &s.Phone, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *ShopRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE shops
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

var _ repository.ShopRepository = (*ShopRepository)(nil)
