package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one shop. Price must be positive.
type Product struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	Price       decimal.Decimal
	IsActive    bool
	ImageURL    string
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Deleted reports whether the product is soft-deleted.
func (p *Product) Deleted() bool { return p.DeletedAt != nil }
