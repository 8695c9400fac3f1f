package domain

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetSnapshot is an immutable point-in-time copy of a budget and its line items.
type BudgetSnapshot struct {
	ID           uuid.UUID
	BudgetID     uuid.UUID
	SnapshotType SnapshotType
	IsBaseline   bool
	Label        *string
	Data         BudgetState
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
}

// FieldChange is one changed scalar field between two states.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// LineItemChange is a line item present in both states with at least one changed field.
type LineItemChange struct {
	Code    string        `json:"code"`
	Old     LineItemState `json:"old"`
	New     LineItemState `json:"new"`
	Changes []FieldChange `json:"changes"`
}

// SnapshotComparison is the structured diff between two snapshots.
// Line items are matched by code, not by database identity.
type SnapshotComparison struct {
	SnapshotID1   uuid.UUID        `json:"snapshot_id_1"`
	SnapshotID2   uuid.UUID        `json:"snapshot_id_2"`
	BudgetChanges []FieldChange    `json:"budget_changes"`
	Added         []LineItemState  `json:"added"`
	Removed       []LineItemState  `json:"removed"`
	Modified      []LineItemChange `json:"modified"`
	Unchanged     []LineItemState  `json:"unchanged"`
}

// HasChanges reports whether the two states differ at all.
func (c SnapshotComparison) HasChanges() bool {
	return len(c.BudgetChanges) > 0 || len(c.Added) > 0 || len(c.Removed) > 0 || len(c.Modified) > 0
}

// CompareStates diffs two budget states. All result slices are non-nil and
// line item groups are ordered by code.
func CompareStates(oldState, newState BudgetState) SnapshotComparison {
	result := SnapshotComparison{
		BudgetChanges: compareBudgetFields(oldState, newState),
		Added:         []LineItemState{},
		Removed:       []LineItemState{},
		Modified:      []LineItemChange{},
		Unchanged:     []LineItemState{},
	}

	oldByCode := make(map[string]LineItemState, len(oldState.LineItems))
	for _, li := range oldState.LineItems {
		oldByCode[li.Code] = li
	}
	newByCode := make(map[string]LineItemState, len(newState.LineItems))
	for _, li := range newState.LineItems {
		newByCode[li.Code] = li
	}

	for code, oldItem := range oldByCode {
		newItem, ok := newByCode[code]
		if !ok {
			result.Removed = append(result.Removed, oldItem)
			continue
		}
		changes := compareLineItemFields(oldItem, newItem)
		if len(changes) == 0 {
			result.Unchanged = append(result.Unchanged, newItem)
			continue
		}
		result.Modified = append(result.Modified, LineItemChange{
			Code:    code,
			Old:     oldItem,
			New:     newItem,
			Changes: changes,
		})
	}
	for code, newItem := range newByCode {
		if _, ok := oldByCode[code]; !ok {
			result.Added = append(result.Added, newItem)
		}
	}

	sortStates(result.Added)
	sortStates(result.Removed)
	sortStates(result.Unchanged)
	sort.Slice(result.Modified, func(i, j int) bool { return result.Modified[i].Code < result.Modified[j].Code })

	return result
}

func compareBudgetFields(a, b BudgetState) []FieldChange {
	changes := []FieldChange{}
	changes = appendIfChanged(changes, "code", a.Code, b.Code)
	changes = appendIfChanged(changes, "title", a.Title, b.Title)
	changes = appendIfChanged(changes, "description", derefString(a.Description), derefString(b.Description))
	changes = appendIfChanged(changes, "org_unit", a.OrgUnit, b.OrgUnit)
	changes = appendIfChanged(changes, "fiscal_year", strconv.Itoa(a.FiscalYear), strconv.Itoa(b.FiscalYear))
	changes = appendIfChanged(changes, "start_date", formatDate(a.StartDate), formatDate(b.StartDate))
	changes = appendIfChanged(changes, "end_date", formatDate(a.EndDate), formatDate(b.EndDate))
	changes = appendIfChanged(changes, "status", a.Status.String(), b.Status.String())
	changes = appendIfChanged(changes, "total_amount", formatMoney(a.TotalAmount), formatMoney(b.TotalAmount))
	return changes
}

func compareLineItemFields(a, b LineItemState) []FieldChange {
	var changes []FieldChange
	changes = appendIfChanged(changes, "name", a.Name, b.Name)
	changes = appendIfChanged(changes, "category", a.Category, b.Category)
	changes = appendIfChanged(changes, "description", derefString(a.Description), derefString(b.Description))
	changes = appendIfChanged(changes, "amount", formatMoney(a.Amount), formatMoney(b.Amount))
	changes = appendIfChanged(changes, "balance", formatMoney(a.Balance), formatMoney(b.Balance))
	return changes
}

func appendIfChanged(changes []FieldChange, field, oldValue, newValue string) []FieldChange {
	if oldValue == newValue {
		return changes
	}
	return append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
}

func sortStates(items []LineItemState) {
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
