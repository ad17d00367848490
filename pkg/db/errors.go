package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err stems from a unique constraint.
// SQLSTATE is checked for the Postgres drivers; the message fallback covers
// the sqlite dialect used in local runs and tests.
func IsUniqueViolation(err error) bool {
	if code, ok := sqlState(err); ok {
		return code == pgUniqueViolation
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err stems from a foreign key
// constraint, i.e. a referenced row does not exist.
func IsForeignKeyViolation(err error) bool {
	if code, ok := sqlState(err); ok {
		return code == pgForeignKeyViolation
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

func sqlState(err error) (string, bool) {
	var pgconnErr *pgconn.PgError
	if errors.As(err, &pgconnErr) {
		return pgconnErr.Code, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}
