package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrInvalidReference  = errors.New("referenced resource does not exist")
	ErrInUse             = errors.New("resource is still referenced")
	ErrConstraint        = errors.New("value violates a constraint")
	QueryTimeoutDuration = time.Second * 5
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Classify maps driver errors onto the package sentinels, keeping the
// original error in the chain. op names the failing operation.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			if isDeleteOfParent(pgErr) {
				return fmt.Errorf("%w: %s", ErrInUse, pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// A blocked parent delete reads "... is still referenced from table ...".
func isDeleteOfParent(pgErr *pgconn.PgError) bool {
	return strings.Contains(pgErr.Detail, "is still referenced")
}
