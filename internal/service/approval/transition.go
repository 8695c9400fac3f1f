package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// Submit moves a draft or rejected entity to submitted.
func (s *Service) Submit(ctx context.Context, input TransitionInput) (*domain.ApprovalHistory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.EntityType, input.EntityID, domain.ActionSubmit, trimOrNil(input.Comments), nil)
}

// StartReview moves a submitted retirement to under_review.
func (s *Service) StartReview(ctx context.Context, input TransitionInput) (*domain.ApprovalHistory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.EntityType, input.EntityID, domain.ActionReview, trimOrNil(input.Comments), nil)
}

// Approve moves an entity to approved and runs its approval side effects in
// the same transaction.
func (s *Service) Approve(ctx context.Context, input TransitionInput) (*domain.ApprovalHistory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.EntityType, input.EntityID, domain.ActionApprove, trimOrNil(input.Comments), nil)
}

// Reject moves an entity to rejected. The reason is stored on the entity and
// in the history metadata.
func (s *Service) Reject(ctx context.Context, input RejectInput) (*domain.ApprovalHistory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	reason := trimOrNil(&input.Reason)
	return s.transition(ctx, input.EntityType, input.EntityID, domain.ActionReject, trimOrNil(input.Comments), reason)
}

// GetApprovalHistory returns the transitions of an entity, oldest first.
func (s *Service) GetApprovalHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ApprovalHistory, error) {
	if !entityType.IsApprovable() {
		return nil, domain.NewValidationError("entity_type", "not approvable")
	}
	return s.history.ListByEntity(ctx, entityType, entityID)
}

func (s *Service) transition(
	ctx context.Context,
	entityType domain.EntityType,
	entityID uuid.UUID,
	action domain.ApprovalAction,
	comments *string,
	reason *string,
) (*domain.ApprovalHistory, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		entity  Approvable
		written domain.ApprovalHistory
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		entity, err = s.load(ctx, entityType, entityID)
		if err != nil {
			return err
		}

		from := entity.CurrentStatus()
		next, ok := domain.NextStatus(entityType, from, action)
		if !ok {
			return &domain.InvalidStateError{Entity: entityType, ID: entityID, Current: from, Action: action}
		}

		change := domain.StatusChange{
			Status:          next,
			Action:          action,
			ActorID:         actorID,
			At:              s.now(),
			RejectionReason: reason,
		}
		if err := entity.ApplyTransition(ctx, change); err != nil {
			return err
		}

		switch next {
		case domain.StatusSubmitted:
			if err := entity.OnSubmitted(ctx); err != nil {
				return err
			}
		case domain.StatusApproved:
			if err := entity.OnApproved(ctx); err != nil {
				return err
			}
		}

		var metadata map[string]any
		if reason != nil {
			metadata = map[string]any{"reason": *reason}
		}

		written, err = s.history.Append(ctx, domain.ApprovalHistory{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			FromStatus: from,
			ToStatus:   next,
			ActorID:    actorID,
			Comments:   comments,
			Metadata:   metadata,
			CreatedAt:  change.At,
		})
		if err != nil {
			return fmt.Errorf("append approval history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition(entityType, action)
	s.log.InfoContext(ctx, "approval transition",
		slog.String("entity_type", string(entityType)),
		slog.String("entity_id", entityID.String()),
		slog.String("action", string(action)),
		slog.String("from", string(written.FromStatus)),
		slog.String("to", string(written.ToStatus)),
		slog.String("actor_id", actorID.String()),
	)

	s.notify(ctx, entity, written)

	return &written, nil
}

// notify runs after commit on a detached context. Delivery failures never
// affect the transition.
func (s *Service) notify(ctx context.Context, entity Approvable, h domain.ApprovalHistory) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctxutil.Detach(ctx), s.notifyTimeout)
	defer cancel()

	payload := entity.Payload()
	payload["entity_type"] = string(h.EntityType)
	payload["entity_id"] = h.EntityID.String()
	payload["from_status"] = string(h.FromStatus)
	payload["to_status"] = string(h.ToStatus)
	payload["actor_id"] = h.ActorID.String()
	if reason, ok := h.Metadata["reason"]; ok {
		payload["reason"] = reason
	}

	event := domain.Event(h.EntityType, h.ToStatus)
	if err := s.notifier.Notify(ctx, entity.Owner(), event, payload); err != nil {
		s.metrics.Notification(false)
		s.log.WarnContext(ctx, "notification failed",
			slog.String("event", string(event)),
			slog.String("entity_id", h.EntityID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.metrics.Notification(true)
}
