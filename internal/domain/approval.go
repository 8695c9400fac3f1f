package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalHistory is one append-only record of a workflow transition.
type ApprovalHistory struct {
	ID         uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	Action     ApprovalAction
	FromStatus ApprovalStatus
	ToStatus   ApprovalStatus
	ActorID    uuid.UUID
	Comments   *string
	Metadata   map[string]any
	CreatedAt  time.Time
}

type transitionKey struct {
	from   ApprovalStatus
	action ApprovalAction
}

// Transition table for budgets and expenditures.
var directTransitions = map[transitionKey]ApprovalStatus{
	{StatusDraft, ActionSubmit}:      StatusSubmitted,
	{StatusRejected, ActionSubmit}:   StatusSubmitted,
	{StatusSubmitted, ActionApprove}: StatusApproved,
	{StatusSubmitted, ActionReject}:  StatusRejected,
}

// Retirements pass through under_review before a decision.
var reviewedTransitions = map[transitionKey]ApprovalStatus{
	{StatusDraft, ActionSubmit}:        StatusSubmitted,
	{StatusRejected, ActionSubmit}:     StatusSubmitted,
	{StatusSubmitted, ActionReview}:    StatusUnderReview,
	{StatusSubmitted, ActionReject}:    StatusRejected,
	{StatusUnderReview, ActionApprove}: StatusApproved,
	{StatusUnderReview, ActionReject}:  StatusRejected,
}

// NextStatus returns the status reached by applying action to an entity of
// the given type in status current. ok is false when the transition is illegal.
func NextStatus(entity EntityType, current ApprovalStatus, action ApprovalAction) (next ApprovalStatus, ok bool) {
	table := directTransitions
	if entity == EntityTypeRetirement {
		table = reviewedTransitions
	}
	next, ok = table[transitionKey{from: current, action: action}]
	return next, ok
}
