package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no record matches the requested id or key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicatedValueUnique is returned when a write would violate a unique field.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
)

const pgUniqueViolation = "23505"

// translatePgError maps driver errors onto the repository sentinels.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicatedValueUnique
	}
	return err
}
