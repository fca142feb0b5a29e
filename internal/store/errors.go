// Package store provides database access for all folio entities. Each store
// struct wraps a *sql.DB and exposes typed query methods. Failures that
// handlers need to branch on surface as sentinel errors checked with
// errors.Is, never by sniffing driver error strings.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a mutation targets a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert or update violates a unique
	// constraint (duplicate email, duplicate slug, duplicate detail level).
	ErrConflict = errors.New("already exists")
)

// PostgreSQL error codes for constraint failures.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapError converts driver-level constraint violations into sentinel errors
// so callers never inspect pg error codes themselves. A unique violation is
// a conflict; a foreign-key violation means the referenced parent row does
// not exist, which callers treat as not found.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return ErrConflict
	case foreignKeyViolation:
		return ErrNotFound
	}
	return err
}
