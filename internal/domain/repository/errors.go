package repository

import "errors"

// Store-level sentinel errors. Implementations must return these so callers
// can distinguish absence from uniqueness conflicts without inspecting
// driver-specific error types.
var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateOwner is returned when inserting a shop for an owner who
	// already has a non-deleted shop (unique index on owner).
	ErrDuplicateOwner = errors.New("owner already has a shop")

	// ErrDuplicateSlug is returned when inserting a shop whose slug collides
	// with another non-deleted shop (unique index on slug).
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrDuplicateEmail is returned when registering an email that already
	// exists, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email already registered")
)
