package approval

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	maxCommentsLength = 2000
	maxReasonLength   = 2000
)

// TransitionInput identifies the entity of a submit, review or approve call.
type TransitionInput struct {
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Comments   *string
}

func (i *TransitionInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTarget(errs, i.EntityType, i.EntityID)
	errs = validateComments(errs, i.Comments)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RejectInput identifies the entity of a reject call. Reason is required.
type RejectInput struct {
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Reason     string
	Comments   *string
}

func (i *RejectInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTarget(errs, i.EntityType, i.EntityID)

	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if len(reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long (max 2000)"})
	}

	errs = validateComments(errs, i.Comments)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTarget(errs []domain.FieldError, entityType domain.EntityType, id uuid.UUID) []domain.FieldError {
	if !entityType.IsApprovable() {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "not approvable"})
	}
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	return errs
}

func validateComments(errs []domain.FieldError, comments *string) []domain.FieldError {
	if comments != nil && len(*comments) > maxCommentsLength {
		errs = append(errs, domain.FieldError{Field: "comments", Message: "too long (max 2000)"})
	}
	return errs
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
