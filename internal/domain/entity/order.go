package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created at checkout. Its items are immutable snapshots of the
// ordered products; later product edits never affect an existing order.
type Order struct {
	ID                  string
	UserID              string
	StatusID            int
	ShippingFirstName   string
	ShippingLastName    string
	ShippingStreet      string
	ShippingHouseNumber string
	ShippingPostalCode  string
	ShippingCity        string
	DeletedAt           *time.Time
	CreatedAt           time.Time

	Items []OrderItem
}

// Total sums price*quantity over the snapshot items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Deleted reports whether the order is soft-deleted.
func (o *Order) Deleted() bool { return o.DeletedAt != nil }

// OrderItem freezes the product name and price at order time.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
