package postgres

import (
	"github.com/heartmarshall/budget-engine/internal/domain"
)

// StatusColumns returns the column assignments that persist a workflow
// transition. Stamps of the reached status are set; a new submission clears
// the previous cycle's rejection stamps (approval_history keeps them).
// reviewColumns is false for tables without reviewed_by/reviewed_at.
func StatusColumns(change domain.StatusChange, reviewColumns bool) map[string]any {
	set := map[string]any{
		"status":     string(change.Status),
		"updated_at": change.At,
	}

	switch change.Status {
	case domain.StatusSubmitted:
		set["submitted_by"] = change.ActorID
		set["submitted_at"] = change.At
		set["rejected_by"] = nil
		set["rejected_at"] = nil
		set["rejection_reason"] = nil
	case domain.StatusUnderReview:
		if reviewColumns {
			set["reviewed_by"] = change.ActorID
			set["reviewed_at"] = change.At
		}
	case domain.StatusApproved:
		set["approved_by"] = change.ActorID
		set["approved_at"] = change.At
	case domain.StatusRejected:
		set["rejected_by"] = change.ActorID
		set["rejected_at"] = change.At
		set["rejection_reason"] = change.RejectionReason
	}

	return set
}
