package budget

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	maxCodeLength        = 50
	maxTitleLength       = 255
	maxDescriptionLength = 5000
	maxLineItems         = 500
	maxListLimit         = 500
	minFiscalYear        = 2000
	maxFiscalYear        = 2100
)

// CreateBudgetInput holds the parameters for creating a budget with its line items.
type CreateBudgetInput struct {
	Code        string
	Title       string
	Description *string
	OrgUnit     string
	FiscalYear  int
	StartDate   time.Time
	EndDate     time.Time
	LineItems   []LineItemInput
}

// LineItemInput holds the parameters for a single line item.
type LineItemInput struct {
	Code        string
	Name        string
	Category    string
	Description *string
	Amount      decimal.Decimal
}

// Validate checks all fields and collects all errors.
func (i *CreateBudgetInput) Validate() error {
	var errs []domain.FieldError

	errs = requireText(errs, "code", i.Code, maxCodeLength)
	errs = requireText(errs, "title", i.Title, maxTitleLength)
	errs = requireText(errs, "org_unit", i.OrgUnit, maxTitleLength)
	errs = checkDescription(errs, "description", i.Description)
	errs = checkFiscalYear(errs, i.FiscalYear)
	errs = checkPeriod(errs, i.StartDate, i.EndDate)

	if len(i.LineItems) > maxLineItems {
		errs = append(errs, domain.FieldError{Field: "line_items", Message: "too many (max 500)"})
	}

	total := decimal.Zero
	seen := make(map[string]int, len(i.LineItems))
	for idx, li := range i.LineItems {
		errs = li.validate(errs, fieldIndex("line_items", idx, ""))
		total = total.Add(li.Amount)
		code := strings.TrimSpace(li.Code)
		if first, dup := seen[code]; dup && code != "" {
			errs = append(errs, domain.FieldError{
				Field:   fieldIndex("line_items", idx, "code"),
				Message: "duplicate of line_items[" + strconv.Itoa(first) + "]",
			})
		} else {
			seen[code] = idx
		}
	}
	if msg := domain.CheckMoney(total); msg != "" && len(errs) == 0 {
		errs = append(errs, domain.FieldError{Field: "total_amount", Message: msg})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Validate checks a single line item added to an existing budget.
func (i *LineItemInput) Validate() error {
	if errs := i.validate(nil, ""); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *LineItemInput) validate(errs []domain.FieldError, prefix string) []domain.FieldError {
	errs = requireText(errs, prefix+"code", i.Code, maxCodeLength)
	errs = requireText(errs, prefix+"name", i.Name, maxTitleLength)
	errs = requireText(errs, prefix+"category", i.Category, maxCodeLength*2)
	errs = checkDescription(errs, prefix+"description", i.Description)
	return checkAmount(errs, prefix+"amount", i.Amount)
}

// UpdateBudgetInput holds the parameters for updating a budget's scalar fields.
type UpdateBudgetInput struct {
	BudgetID    uuid.UUID
	Title       *string
	Description *string
	OrgUnit     *string
	FiscalYear  *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// Validate checks all fields and collects all errors. The date range is
// checked again against the stored budget.
func (i *UpdateBudgetInput) Validate() error {
	var errs []domain.FieldError

	if i.BudgetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "budget_id", Message: "required"})
	}
	if i.Title != nil {
		errs = requireText(errs, "title", *i.Title, maxTitleLength)
	}
	if i.OrgUnit != nil {
		errs = requireText(errs, "org_unit", *i.OrgUnit, maxTitleLength)
	}
	errs = checkDescription(errs, "description", i.Description)
	if i.FiscalYear != nil {
		errs = checkFiscalYear(errs, *i.FiscalYear)
	}
	if i.StartDate != nil && i.EndDate != nil {
		errs = checkPeriod(errs, *i.StartDate, *i.EndDate)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *UpdateBudgetInput) params() domain.BudgetUpdateParams {
	return domain.BudgetUpdateParams{
		Title:       trimPtr(i.Title),
		Description: trimPtr(i.Description),
		OrgUnit:     trimPtr(i.OrgUnit),
		FiscalYear:  i.FiscalYear,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
	}
}

// UpdateLineItemInput holds the parameters for updating a line item.
// An empty Description clears it.
type UpdateLineItemInput struct {
	LineItemID  uuid.UUID
	Name        *string
	Category    *string
	Description *string
	Amount      *decimal.Decimal
}

// Validate checks all fields and collects all errors.
func (i *UpdateLineItemInput) Validate() error {
	var errs []domain.FieldError

	if i.LineItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "line_item_id", Message: "required"})
	}
	if i.Name != nil {
		errs = requireText(errs, "name", *i.Name, maxTitleLength)
	}
	if i.Category != nil {
		errs = requireText(errs, "category", *i.Category, maxCodeLength*2)
	}
	errs = checkDescription(errs, "description", i.Description)
	if i.Amount != nil {
		errs = checkAmount(errs, "amount", *i.Amount)
	}
	if i.Name == nil && i.Category == nil && i.Description == nil && i.Amount == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *UpdateLineItemInput) params() domain.LineItemUpdateParams {
	return domain.LineItemUpdateParams{
		Name:        trimPtr(i.Name),
		Category:    trimPtr(i.Category),
		Description: trimPtr(i.Description),
		Amount:      i.Amount,
	}
}

// normalizeFilter applies list defaults and bounds.
func normalizeFilter(f domain.BudgetFilter) (domain.BudgetFilter, error) {
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
		return f, domain.NewValidationErrors(errs)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requireText(errs []domain.FieldError, field, value string, limit int) []domain.FieldError {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(v) > limit:
		errs = append(errs, domain.FieldError{Field: field, Message: "too long (max " + strconv.Itoa(limit) + ")"})
	}
	return errs
}

func checkDescription(errs []domain.FieldError, field string, value *string) []domain.FieldError {
	if value != nil && len(*value) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: field, Message: "too long (max 5000)"})
	}
	return errs
}

// checkAmount allows zero: a line item may be planned before it is funded.
func checkAmount(errs []domain.FieldError, field string, amount decimal.Decimal) []domain.FieldError {
	if amount.IsNegative() {
		return append(errs, domain.FieldError{Field: field, Message: "must not be negative"})
	}
	if msg := domain.CheckMoney(amount); msg != "" {
		return append(errs, domain.FieldError{Field: field, Message: msg})
	}
	return errs
}

func checkFiscalYear(errs []domain.FieldError, year int) []domain.FieldError {
	if year < minFiscalYear || year > maxFiscalYear {
		errs = append(errs, domain.FieldError{Field: "fiscal_year", Message: "out of range"})
	}
	return errs
}

func checkPeriod(errs []domain.FieldError, start, end time.Time) []domain.FieldError {
	if start.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if end.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be after start_date"})
	}
	return errs
}

// fieldIndex builds "prefix[idx].field" or "prefix[idx]." when field is empty.
func fieldIndex(prefix string, idx int, field string) string {
	return prefix + "[" + strconv.Itoa(idx) + "]." + field
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
