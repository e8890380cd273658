package entity

import (
	"time"
)

// Shop is owned by exactly one user. At most one non-deleted shop may exist
// per owner; the slug is unique among non-deleted shops. Both rules are
// enforced by partial unique indexes in the store, not only by pre-checks.
type Shop struct {
	ID           string
	UserID       string
	Name         string
	Slug         string
	Description  string
	ContactEmail string
	Phone        string
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Deleted reports whether the shop is soft-deleted.
func (s *Shop) Deleted() bool { return s.DeletedAt != nil }
