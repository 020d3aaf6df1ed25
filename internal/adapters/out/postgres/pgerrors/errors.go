// Package pgerrors classifies PostgreSQL failures so that callers can tell a
// retryable conflict from a permanent error.
package pgerrors

import (
	"database/sql"
	"errors"
	"fmt"

	"foodorders/internal/pkg/errs"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
	ErrorClassUniqueViolation
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassTransient:
		return "transient"
	case ErrorClassDeadlock:
		return "deadlock"
	case ErrorClassSerialization:
		return "serialization"
	case ErrorClassUniqueViolation:
		return "unique violation"
	default:
		return "permanent"
	}
}

// sqlStater is implemented by pgx errors; lib/pq errors expose Code instead.
type sqlStater interface {
	SQLState() string
}

// Code extracts the SQLSTATE of err, or "" when err does not come from the server.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var stater sqlStater
	if errors.As(err, &stater) {
		return stater.SQLState()
	}
	return ""
}

func ClassifyError(err error) ErrorClass {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return ErrorClassPermanent
	}

	switch Code(err) {
	case "40001":
		return ErrorClassSerialization
	case "40P01":
		return ErrorClassDeadlock
	case "55P03":
		// lock_not_available, raised when lock_timeout expires on a row lock
		return ErrorClassTransient
	case "23505":
		return ErrorClassUniqueViolation
	default:
		return ErrorClassPermanent
	}
}

func IsRetryable(err error) bool {
	class := ClassifyError(err)
	return class == ErrorClassTransient ||
		class == ErrorClassDeadlock ||
		class == ErrorClassSerialization
}

// Wrap marks retryable errors with errs.ErrTransient and duplicate keys with
// errs.ErrAlreadyExists. Every other error is returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if ClassifyError(err) == ErrorClassUniqueViolation {
		return fmt.Errorf("%w: %w", errs.ErrAlreadyExists, err)
	}
	if !IsRetryable(err) {
		return err
	}
	return fmt.Errorf("%w (%s): %w", errs.ErrTransient, ClassifyError(err), err)
}
