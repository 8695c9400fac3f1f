package version

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// GetVersions returns the versions of a budget, newest first.
func (s *Service) GetVersions(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetVersion, error) {
	if _, err := s.budgets.GetByID(ctx, budgetID); err != nil {
		return nil, err
	}
	return s.versions.ListByBudget(ctx, budgetID)
}

// GetVersion returns one version of a budget.
func (s *Service) GetVersion(ctx context.Context, budgetID, versionID uuid.UUID) (*domain.BudgetVersion, error) {
	return s.versions.GetByID(ctx, budgetID, versionID)
}

// GetCurrentVersion returns the current version of a budget.
func (s *Service) GetCurrentVersion(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetVersion, error) {
	return s.versions.GetCurrent(ctx, budgetID)
}
