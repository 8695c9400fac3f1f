package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetVersion is an append-only revision of a budget. At most one version per
// budget has IsCurrent set.
type BudgetVersion struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	Version         int
	Status          ApprovalStatus
	IsCurrent       bool
	Changes         VersionChanges
	CreatedBy       uuid.UUID
	SubmittedBy     *uuid.UUID
	SubmittedAt     *time.Time
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID
	RejectedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
}

// VersionChanges is the stored payload of a version. State is the full budget
// state at the time the version was taken and is what a restore reapplies.
type VersionChanges struct {
	Note         string         `json:"note,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
	RestoredFrom *int           `json:"restored_from,omitempty"`
	State        BudgetState    `json:"state"`
}
