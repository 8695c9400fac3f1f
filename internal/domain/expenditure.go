package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expenditure is spending recorded against a budget line item. Only approved
// expenditures count against the line item balance.
type Expenditure struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	LineItemID      uuid.UUID
	ReferenceNumber string
	Amount          decimal.Decimal
	Description     string
	Payee           *string
	ExpenseDate     time.Time
	Status          ApprovalStatus
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

// ExpenditureUpdateParams holds optional changes to a draft or rejected expenditure.
type ExpenditureUpdateParams struct {
	Amount      *decimal.Decimal
	Description *string
	Payee       *string
	ExpenseDate *time.Time
}

// ExpenditureFilter narrows expenditure listings.
type ExpenditureFilter struct {
	BudgetID   *uuid.UUID
	LineItemID *uuid.UUID
	Status     *ApprovalStatus
	Limit      int
	Offset     int
}

// ExpenditureRetirement accounts for how an approved expenditure was spent.
type ExpenditureRetirement struct {
	ID               uuid.UUID
	ExpenditureID    uuid.UUID
	RetirementNumber string
	AmountRetired    decimal.Decimal
	BalanceUnretired decimal.Decimal
	Description      string
	Status           ApprovalStatus
	CreatedBy        uuid.UUID
	SubmittedBy      *uuid.UUID
	SubmittedAt      *time.Time
	ReviewedBy       *uuid.UUID
	ReviewedAt       *time.Time
	ApprovedBy       *uuid.UUID
	ApprovedAt       *time.Time
	RejectedBy       *uuid.UUID
	RejectedAt       *time.Time
	RejectionReason  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UnretiredBalance returns expenditureAmount minus retired.
func UnretiredBalance(expenditureAmount, retired decimal.Decimal) decimal.Decimal {
	return expenditureAmount.Sub(retired)
}

// StatusChange is the persisted effect of one workflow transition.
type StatusChange struct {
	Status          ApprovalStatus
	Action          ApprovalAction
	ActorID         uuid.UUID
	At              time.Time
	RejectionReason *string
}
