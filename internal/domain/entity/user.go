package entity

import (
	"time"
)

// User is the aggregate root for the buyer/seller account domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
