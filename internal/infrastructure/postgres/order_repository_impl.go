package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	"github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order and its snapshot items in a single transaction so
// a partially written order can never be observed.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, status_id, shipping_first_name, shipping_last_name,
		                    shipping_street, shipping_house_number, shipping_postal_code, shipping_city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, o.ID, o.UserID, o.StatusID, o.ShippingFirstName, o.ShippingLastName,
		o.ShippingStreet, o.ShippingHouseNumber, o.ShippingPostalCode, o.ShippingCity)
	if err := row.Scan(&o.CreatedAt); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, it.ID, it.OrderID, it.ProductID, it.ProductName, it.ProductPrice, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o := &entity.Order{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, status_id, shipping_first_name, shipping_last_name,
		       shipping_street, shipping_house_number, shipping_postal_code, shipping_city,
		       deleted_at, created_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err := row.Scan(&o.ID, &o.UserID, &o.StatusID, &o.ShippingFirstName, &o.ShippingLastName,
		&o.ShippingStreet, &o.ShippingHouseNumber, &o.ShippingPostalCode, &o.ShippingCity,
		&o.DeletedAt, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, status_id, shipping_first_name, shipping_last_name,
		       shipping_street, shipping_house_number, shipping_postal_code, shipping_city,
		       deleted_at, created_at
		FROM orders
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		o := entity.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.StatusID, &o.ShippingFirstName, &o.ShippingLastName,
			&o.ShippingStreet, &o.ShippingHouseNumber, &o.ShippingPostalCode, &o.ShippingCity,
			&o.DeletedAt, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsByOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, statusID int) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status_id = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, statusID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) itemsByOrder(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, product_name, product_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.OrderItem, 0)
	for rows.Next() {
		it := entity.OrderItem{}
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.ProductPrice, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
