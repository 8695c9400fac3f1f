package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBudget inserts a draft budget with a unique code and zero total.
func SeedBudget(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID) domain.Budget {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	b := domain.Budget{
		ID:          uuid.New(),
		Code:        "BUD-" + suffix,
		Title:       "Budget " + suffix,
		OrgUnit:     "org-" + suffix,
		FiscalYear:  2026,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusDraft,
		TotalAmount: decimal.Zero,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO budgets (id, code, title, org_unit, fiscal_year, start_date, end_date, status, total_amount, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.Code, b.Title, b.OrgUnit, b.FiscalYear, b.StartDate, b.EndDate,
		string(b.Status), b.TotalAmount, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBudget insert: %v", err)
	}

	return b
}

// SeedLineItem inserts a line item with balance equal to amount and adds the
// amount to the budget total.
func SeedLineItem(t *testing.T, pool *pgxpool.Pool, budgetID uuid.UUID, code string, amount decimal.Decimal) domain.BudgetLineItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	li := domain.BudgetLineItem{
		ID:         uuid.New(),
		BudgetID:   budgetID,
		Code:       code,
		Name:       "Line " + code,
		Category:   "operations",
		Amount:     amount,
		Balance:    amount,
		FiscalYear: 2026,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO budget_line_items (id, budget_id, code, name, category, amount, balance, fiscal_year, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		li.ID, li.BudgetID, li.Code, li.Name, li.Category, li.Amount, li.Balance, li.FiscalYear, li.CreatedAt, li.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLineItem insert: %v", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE budgets SET total_amount = total_amount + $2 WHERE id = $1`,
		budgetID, amount,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLineItem update total: %v", err)
	}

	return li
}

// SeedExpenditure inserts an expenditure in the given status without touching
// the line item balance.
func SeedExpenditure(t *testing.T, pool *pgxpool.Pool, li domain.BudgetLineItem, amount decimal.Decimal, status domain.ApprovalStatus, createdBy uuid.UUID) domain.Expenditure {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Expenditure{
		ID:              uuid.New(),
		BudgetID:        li.BudgetID,
		LineItemID:      li.ID,
		ReferenceNumber: "SEED-" + uniqueSuffix(),
		Amount:          amount,
		Description:     "seeded expenditure",
		ExpenseDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:          status,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO expenditures (id, budget_id, line_item_id, reference_number, amount, description, expense_date, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.BudgetID, e.LineItemID, e.ReferenceNumber, e.Amount, e.Description,
		e.ExpenseDate, string(e.Status), e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExpenditure insert: %v", err)
	}

	return e
}
