package repository

import (
	"context"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
)

// OrderRepository defines store operations over orders and their snapshot
// items. Create persists the order and its items in one transaction; items
// are immutable afterwards.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// GetByID loads a non-deleted order with its items.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
	// UpdateStatus persists a status change. Transition rules are checked by
	// the caller.
	UpdateStatus(ctx context.Context, id string, statusID int) error
}
