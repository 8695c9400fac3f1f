package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Utilization thresholds in percent. Fixed for every line item and budget.
var (
	criticalThreshold = decimal.NewFromInt(95)
	highThreshold     = decimal.NewFromInt(85)
	mediumThreshold   = decimal.NewFromInt(75)
	hundred           = decimal.NewFromInt(100)
)

// Utilization describes how much of an allocation has been spent.
type Utilization struct {
	EntityID   uuid.UUID
	Allocated  decimal.Decimal
	Spent      decimal.Decimal
	Available  decimal.Decimal
	Percentage decimal.Decimal
	Level      UtilizationLevel
}

// NewUtilization computes the percentage and level for spent against allocated.
// A zero allocation yields 0% unless something was spent, which is 100%.
func NewUtilization(id uuid.UUID, allocated, spent decimal.Decimal) Utilization {
	pct := decimal.Zero
	switch {
	case allocated.IsPositive():
		pct = spent.Mul(hundred).Div(allocated).Round(2)
	case spent.IsPositive():
		pct = hundred
	}
	return Utilization{
		EntityID:   id,
		Allocated:  allocated,
		Spent:      spent,
		Available:  allocated.Sub(spent),
		Percentage: pct,
		Level:      ClassifyUtilization(pct),
	}
}

// ClassifyUtilization maps a percentage to its warning level.
func ClassifyUtilization(pct decimal.Decimal) UtilizationLevel {
	switch {
	case pct.GreaterThanOrEqual(criticalThreshold):
		return UtilizationCritical
	case pct.GreaterThanOrEqual(highThreshold):
		return UtilizationHigh
	case pct.GreaterThanOrEqual(mediumThreshold):
		return UtilizationMedium
	default:
		return UtilizationNormal
	}
}

// ReconcileReport summarizes a ledger reconciliation run.
type ReconcileReport struct {
	LineItemsChecked int
	LineItemsDrifted int
	BudgetsChecked   int
	BudgetsDrifted   int
	Failures         int
}
