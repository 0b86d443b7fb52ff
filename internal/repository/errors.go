package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Store failures callers may need to tell apart. The original *pq.Error stays
// in the chain.
var (
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrUniqueViolation     = errors.New("unique violation")
	ErrInvalidInput        = errors.New("invalid input")
)

// PostgreSQL SQLSTATE codes
const (
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeInvalidTextRepr      = "22P02"
	codeNumericOutOfRange    = "22003"
	codeStringDataRightTrunc = "22001"
)

// classify tags driver errors with one of the sentinels above
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case codeInvalidTextRepr, codeNumericOutOfRange, codeNotNullViolation,
		codeCheckViolation, codeStringDataRightTrunc:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}

// ViolatedConstraint returns the constraint name carried by a driver error
func ViolatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
