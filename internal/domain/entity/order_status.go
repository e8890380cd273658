package entity

// OrderStatus is static reference data seeded by migrations.
type OrderStatus struct {
	ID          int
	Name        string
	Description string
}

// Seeded status ids. Transitions are forward-only:
// submitted -> confirmed -> shipped.
const (
	StatusSubmitted = 1
	StatusConfirmed = 2
	StatusShipped   = 3
)

// StatusName maps a seeded status id to its name, or "" when unknown.
func StatusName(id int) string {
	switch id {
	case StatusSubmitted:
		return "submitted"
	case StatusConfirmed:
		return "confirmed"
	case StatusShipped:
		return "shipped"
	}
	return ""
}
