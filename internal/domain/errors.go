package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("conflict")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// InvalidStateError is returned when a workflow action is not legal from the
// entity's current status.
type InvalidStateError struct {
	Entity  EntityType
	ID      uuid.UUID
	Current ApprovalStatus
	Action  ApprovalAction
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: cannot %s %s %s in status %s",
		e.Action, e.Entity, e.ID, e.Current)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// InsufficientBalanceError is returned when a line item cannot cover an amount.
// Available is the balance before the requested amount was applied.
type InsufficientBalanceError struct {
	LineItemID uuid.UUID
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on line item %s: requested %s, available %s",
		e.LineItemID, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// ConflictError is returned when an operation would break a cross-entity rule,
// e.g. deleting a budget that already has expenditures.
type ConflictError struct {
	Entity EntityType
	ID     uuid.UUID
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError creates a ConflictError.
func NewConflictError(entity EntityType, id uuid.UUID, reason string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

// ErrorKind is a stable, transport-neutral classification of an error.
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindInvalidState        ErrorKind = "invalid_state"
	KindInsufficientBalance ErrorKind = "insufficient_balance"
	KindConflict            ErrorKind = "conflict"
	KindNotFound            ErrorKind = "not_found"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindInternal            ErrorKind = "internal"
)

// KindOf classifies err for the boundary layer. ErrAlreadyExists is reported as a conflict.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}
