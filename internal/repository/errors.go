// Package repository implements typed data access over MySQL.  Every write
// path validates its payload with the validate package before issuing SQL,
// and every database error leaves this package as one of a small set of
// categories; raw driver error codes never cross the boundary.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/mixtapemassey/site/internal/validate"
)

// Error categories surfaced to handlers.  Handlers translate these into
// HTTP statuses: ErrNotFound -> 404, ErrDuplicate -> 409, ErrForeignKey ->
// 409, ErrUnauthorized -> 403; anything else is a 500.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrForeignKey   = errors.New("referenced record does not exist")
	ErrUnauthorized = errors.New("unauthorized")
)

// translate maps sql and MySQL driver errors to the package categories.
// Validation errors pass through untouched so callers can surface the
// field-level message verbatim.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var ferr *validate.FieldError
	if errors.As(err, &ferr) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return ErrDuplicate
		case 1216, 1452:
			return ErrForeignKey
		case 1044, 1142:
			return ErrUnauthorized
		}
	}
	return fmt.Errorf("database operation failed: %w", err)
}

// IsValidation reports whether err is a field validation failure, as
// opposed to a persistence failure.
func IsValidation(err error) bool {
	var ferr *validate.FieldError
	return errors.As(err, &ferr)
}
