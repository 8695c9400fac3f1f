package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// PostgreSQL error codes mapped to domain errors.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNumericOutOfRange    = "22003"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// Check constraints that guard ledger balances. Hitting one means a write
// tried to spend money the line item does not have.
var balanceConstraints = map[string]bool{
	"line_items_balance_non_negative":    true,
	"retirements_unretired_non_negative": true,
}

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity name and id. Context errors pass through unmapped.
//
// Lock timeouts, deadlocks and serialization failures become ErrConflict:
// another transaction holds the row and the caller may retry.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrAlreadyExists)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrNotFound)
	case codeCheckViolation:
		if balanceConstraints[pgErr.ConstraintName] {
			return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrInsufficientBalance)
		}
		return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.ConstraintName, domain.ErrValidation)
	case codeNumericOutOfRange:
		return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.Message, domain.ErrValidation)
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.Message, domain.ErrConflict)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
