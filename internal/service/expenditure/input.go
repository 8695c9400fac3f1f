package expenditure

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	maxDescriptionLength = 2000
	maxPayeeLength       = 255
	maxListLimit         = 500
)

// CreateExpenditureInput holds the parameters for recording an expenditure.
type CreateExpenditureInput struct {
	BudgetID    uuid.UUID
	LineItemID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Payee       *string
	ExpenseDate time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateExpenditureInput) Validate() error {
	var errs []domain.FieldError

	if i.BudgetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "budget_id", Message: "required"})
	}
	if i.LineItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "line_item_id", Message: "required"})
	}
	errs = checkAmount(errs, i.Amount)
	errs = checkDescription(errs, i.Description)
	errs = checkPayee(errs, i.Payee)
	if i.ExpenseDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expense_date", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateExpenditureInput holds the parameters for editing a draft or rejected
// expenditure. An empty Payee clears it.
type UpdateExpenditureInput struct {
	ExpenditureID uuid.UUID
	Amount        *decimal.Decimal
	Description   *string
	Payee         *string
	ExpenseDate   *time.Time
}

// Validate checks all fields and collects all errors.
func (i *UpdateExpenditureInput) Validate() error {
	var errs []domain.FieldError

	if i.ExpenditureID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "expenditure_id", Message: "required"})
	}
	if i.Amount != nil {
		errs = checkAmount(errs, *i.Amount)
	}
	if i.Description != nil {
		errs = checkDescription(errs, *i.Description)
	}
	errs = checkPayee(errs, i.Payee)
	if i.ExpenseDate != nil && i.ExpenseDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expense_date", Message: "required"})
	}
	if i.Amount == nil && i.Description == nil && i.Payee == nil && i.ExpenseDate == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *UpdateExpenditureInput) params() domain.ExpenditureUpdateParams {
	p := domain.ExpenditureUpdateParams{
		Amount:      i.Amount,
		ExpenseDate: i.ExpenseDate,
	}
	if i.Description != nil {
		d := strings.TrimSpace(*i.Description)
		p.Description = &d
	}
	if i.Payee != nil {
		payee := strings.TrimSpace(*i.Payee)
		p.Payee = &payee
	}
	return p
}

// CreateRetirementInput holds the parameters for retiring an approved expenditure.
type CreateRetirementInput struct {
	ExpenditureID uuid.UUID
	AmountRetired decimal.Decimal
	Description   string
}

// Validate checks all fields and collects all errors. The upper bound of
// AmountRetired is checked against the expenditure.
func (i *CreateRetirementInput) Validate() error {
	var errs []domain.FieldError

	if i.ExpenditureID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "expenditure_id", Message: "required"})
	}
	errs = checkAmountRetired(errs, i.AmountRetired)
	errs = checkDescription(errs, i.Description)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateRetirementInput holds the parameters for editing a draft or rejected retirement.
type UpdateRetirementInput struct {
	RetirementID  uuid.UUID
	AmountRetired *decimal.Decimal
	Description   *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateRetirementInput) Validate() error {
	var errs []domain.FieldError

	if i.RetirementID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "retirement_id", Message: "required"})
	}
	if i.AmountRetired != nil {
		errs = checkAmountRetired(errs, *i.AmountRetired)
	}
	if i.Description != nil {
		errs = checkDescription(errs, *i.Description)
	}
	if i.AmountRetired == nil && i.Description == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateFilter(f domain.ExpenditureFilter) error {
	var errs []domain.FieldError
	if f.Limit < 0 || f.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if f.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func checkAmount(errs []domain.FieldError, amount decimal.Decimal) []domain.FieldError {
	if !amount.IsPositive() {
		return append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if msg := domain.CheckMoney(amount); msg != "" {
		return append(errs, domain.FieldError{Field: "amount", Message: msg})
	}
	return errs
}

func checkAmountRetired(errs []domain.FieldError, amount decimal.Decimal) []domain.FieldError {
	if amount.IsNegative() {
		return append(errs, domain.FieldError{Field: "amount_retired", Message: "must not be negative"})
	}
	if msg := domain.CheckMoney(amount); msg != "" {
		return append(errs, domain.FieldError{Field: "amount_retired", Message: msg})
	}
	return errs
}

func checkDescription(errs []domain.FieldError, d string) []domain.FieldError {
	switch v := strings.TrimSpace(d); {
	case v == "":
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	case len(v) > maxDescriptionLength:
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}
	return errs
}

func checkPayee(errs []domain.FieldError, payee *string) []domain.FieldError {
	if payee != nil && len(*payee) > maxPayeeLength {
		errs = append(errs, domain.FieldError{Field: "payee", Message: "too long (max 255)"})
	}
	return errs
}
