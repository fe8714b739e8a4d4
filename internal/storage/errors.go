package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the persistence layer. Callers distinguish
// constraint failures from not-found and from connectivity problems with
// errors.Is.
var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("storage: record not found")

	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("storage: duplicate key")

	// ErrForeignKeyViolation is returned when a referenced row does not exist.
	ErrForeignKeyViolation = errors.New("storage: foreign key violation")

	// ErrConstraintViolation is returned on not-null, check and malformed
	// value failures.
	ErrConstraintViolation = errors.New("storage: constraint violation")
)

// PostgreSQL SQLSTATE codes of interest.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
	codeInvalidDatetime     = "22007"
)

// Error wraps a sentinel with the original driver error and the
// constraint detail reported by the server.
type Error struct {
	Sentinel error
	Detail   string
	Cause    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Sentinel, e.Detail)
	}
	return e.Sentinel.Error()
}

func (e *Error) Is(target error) bool { return errors.Is(e.Sentinel, target) }
func (e *Error) Unwrap() error        { return e.Cause }

// Detail returns the server-reported constraint detail for a mapped error,
// or an empty string.
func Detail(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

// MapError translates driver errors into the package sentinels. Errors that
// do not correspond to a known condition are returned unchanged and end up
// classified as internal failures at the HTTP boundary.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Sentinel: ErrNotFound, Cause: err}
	}

	// Already mapped, do not double-wrap.
	var se *Error
	if errors.As(err, &se) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}

		switch pgErr.Code {
		case codeUniqueViolation:
			return &Error{Sentinel: ErrDuplicateKey, Detail: detail, Cause: err}
		case codeForeignKeyViolation:
			return &Error{Sentinel: ErrForeignKeyViolation, Detail: detail, Cause: err}
		case codeNotNullViolation, codeCheckViolation, codeInvalidTextRepr, codeInvalidDatetime:
			return &Error{Sentinel: ErrConstraintViolation, Detail: detail, Cause: err}
		}
	}

	return err
}
