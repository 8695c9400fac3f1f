package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is an annual plan of an organizational unit. TotalAmount is always
// the sum of its live line items' amounts.
type Budget struct {
	ID              uuid.UUID
	Code            string
	Title           string
	Description     *string
	OrgUnit         string
	FiscalYear      int
	StartDate       time.Time
	EndDate         time.Time
	Status          ApprovalStatus
	TotalAmount     decimal.Decimal
	CreatedBy       uuid.UUID
	SubmittedBy     *uuid.UUID
	SubmittedAt     *time.Time
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID
	RejectedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// BudgetLineItem is a funded sub-allocation of a budget. Balance is derived:
// Amount minus the sum of approved expenditures referencing the item.
type BudgetLineItem struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	Code        string
	Name        string
	Category    string
	Description *string
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	FiscalYear  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Spent returns the approved spend implied by Amount and Balance.
func (li BudgetLineItem) Spent() decimal.Decimal {
	return li.Amount.Sub(li.Balance)
}

// BudgetUpdateParams holds optional scalar changes to a budget. nil = don't change.
type BudgetUpdateParams struct {
	Title       *string
	Description *string
	OrgUnit     *string
	FiscalYear  *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// IsEmpty reports whether no field is set.
func (p BudgetUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.OrgUnit == nil &&
		p.FiscalYear == nil && p.StartDate == nil && p.EndDate == nil
}

// LineItemUpdateParams holds optional changes to a line item. nil = don't change.
type LineItemUpdateParams struct {
	Name        *string
	Category    *string
	Description *string
	Amount      *decimal.Decimal
}

// BudgetFilter narrows budget listings and summaries.
type BudgetFilter struct {
	OrgUnit    *string
	FiscalYear *int
	Status     *ApprovalStatus
	Limit      int
	Offset     int
}

// BudgetSummaryRow aggregates budgeted against spent for one
// (organizational unit, fiscal year) pair. Spent is derived from approved expenditures.
type BudgetSummaryRow struct {
	OrgUnit     string
	FiscalYear  int
	BudgetCount int
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
}

// Remaining returns Budgeted minus Spent.
func (r BudgetSummaryRow) Remaining() decimal.Decimal {
	return r.Budgeted.Sub(r.Spent)
}

// BudgetState is the serialized copy of a budget and its line items used by
// versions and snapshots.
type BudgetState struct {
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	OrgUnit     string          `json:"org_unit"`
	FiscalYear  int             `json:"fiscal_year"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Status      ApprovalStatus  `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineItems   []LineItemState `json:"line_items"`
}

// LineItemState is the serialized copy of a line item.
type LineItemState struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// CaptureState builds a BudgetState from live rows.
func CaptureState(b Budget, items []BudgetLineItem) BudgetState {
	state := BudgetState{
		Code:        b.Code,
		Title:       b.Title,
		Description: b.Description,
		OrgUnit:     b.OrgUnit,
		FiscalYear:  b.FiscalYear,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
		LineItems:   make([]LineItemState, 0, len(items)),
	}
	for _, li := range items {
		state.LineItems = append(state.LineItems, LineItemState{
			Code:        li.Code,
			Name:        li.Name,
			Category:    li.Category,
			Description: li.Description,
			Amount:      li.Amount,
			Balance:     li.Balance,
		})
	}
	return state
}

// SumAmounts returns the total of the given line item amounts.
func SumAmounts(items []BudgetLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount)
	}
	return total
}
