package domain

// ApprovalStatus is the workflow status shared by budgets, versions,
// expenditures and retirements.
type ApprovalStatus string

const (
	StatusDraft       ApprovalStatus = "draft"
	StatusSubmitted   ApprovalStatus = "submitted"
	StatusUnderReview ApprovalStatus = "under_review"
	StatusApproved    ApprovalStatus = "approved"
	StatusRejected    ApprovalStatus = "rejected"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether s closes an approval cycle.
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// IsEditable reports whether an entity in status s may have its content changed.
func (s ApprovalStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusRejected
}

// ApprovalAction is a workflow verb recorded in approval history.
type ApprovalAction string

const (
	ActionSubmit  ApprovalAction = "submit"
	ActionReview  ApprovalAction = "review"
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// ActionEdit is reported by InvalidStateError for content changes outside the
// workflow. It is never recorded in approval history.
const ActionEdit ApprovalAction = "edit"

func (a ApprovalAction) String() string { return string(a) }

func (a ApprovalAction) IsValid() bool {
	switch a {
	case ActionSubmit, ActionReview, ActionApprove, ActionReject:
		return true
	}
	return false
}

// EntityType identifies the kind of approvable or versioned entity.
type EntityType string

const (
	EntityTypeBudget      EntityType = "BUDGET"
	EntityTypeLineItem    EntityType = "LINE_ITEM"
	EntityTypeVersion     EntityType = "BUDGET_VERSION"
	EntityTypeSnapshot    EntityType = "BUDGET_SNAPSHOT"
	EntityTypeExpenditure EntityType = "EXPENDITURE"
	EntityTypeRetirement  EntityType = "RETIREMENT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeBudget, EntityTypeLineItem, EntityTypeVersion, EntityTypeSnapshot,
		EntityTypeExpenditure, EntityTypeRetirement:
		return true
	}
	return false
}

// IsApprovable reports whether entities of this type go through the approval workflow.
func (e EntityType) IsApprovable() bool {
	switch e {
	case EntityTypeBudget, EntityTypeExpenditure, EntityTypeRetirement:
		return true
	}
	return false
}

// SnapshotType classifies why a snapshot was taken.
type SnapshotType string

const (
	SnapshotMonthly   SnapshotType = "monthly"
	SnapshotQuarterly SnapshotType = "quarterly"
	SnapshotAnnual    SnapshotType = "annual"
	SnapshotAdHoc     SnapshotType = "ad_hoc"
)

func (s SnapshotType) String() string { return string(s) }

func (s SnapshotType) IsValid() bool {
	switch s {
	case SnapshotMonthly, SnapshotQuarterly, SnapshotAnnual, SnapshotAdHoc:
		return true
	}
	return false
}

// UtilizationLevel is the warning classification of spent/allocated.
type UtilizationLevel string

const (
	UtilizationNormal   UtilizationLevel = "normal"
	UtilizationMedium   UtilizationLevel = "medium"
	UtilizationHigh     UtilizationLevel = "high"
	UtilizationCritical UtilizationLevel = "critical"
)

func (l UtilizationLevel) String() string { return string(l) }

// NotificationEvent names an event delivered to the notification collaborator.
type NotificationEvent string

// Event builds the notification event name for an entity transition,
// e.g. "expenditure.approved".
func Event(entity EntityType, status ApprovalStatus) NotificationEvent {
	var prefix string
	switch entity {
	case EntityTypeBudget:
		prefix = "budget"
	case EntityTypeExpenditure:
		prefix = "expenditure"
	case EntityTypeRetirement:
		prefix = "retirement"
	default:
		prefix = "entity"
	}
	return NotificationEvent(prefix + "." + string(status))
}
