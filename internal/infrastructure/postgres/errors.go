package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// Partial unique indexes created by the migrations. Conflicts on these are
// translated into the repository sentinels so services never see raw
// driver errors for business-rule races.
const (
	constraintShopOwner = "idx_shops_user_id"
	constraintShopSlug  = "idx_shops_slug"
	constraintUserEmail = "idx_users_email"
)

// translateUnique maps a unique-violation on a known constraint to its
// repository sentinel; any other error passes through unchanged.
func translateUnique(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintShopOwner:
		return repository.ErrDuplicateOwner
	case constraintShopSlug:
		return repository.ErrDuplicateSlug
	case constraintUserEmail:
		return repository.ErrDuplicateEmail
	}
	return err
}
