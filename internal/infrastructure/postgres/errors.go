package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-project-marketplace/internal/domain/repository"
)

var (
	ErrNotFound   = repository.ErrNotFound
	ErrEmailTaken = repository.ErrDuplicateEmail
)

// pgCode returns the SQLSTATE of err when it is a PostgreSQL error.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

// isInvalidID reports a malformed value for a typed column, which is what a
// non-UUID id produces against the uuid key columns.
func isInvalidID(err error) bool {
	return pgCode(err) == pgerrcode.InvalidTextRepresentation
}
