package snapshot

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ lineItemRepo = &lineItemRepoMock{}

type lineItemRepoMock struct {
	ListByBudgetFunc func(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)

	calls struct {
		ListByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
	}
	lockListByBudget sync.RWMutex
}

func (mock *lineItemRepoMock) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error) {
	if mock.ListByBudgetFunc == nil {
		panic("lineItemRepoMock.ListByBudgetFunc: method is nil but lineItemRepo.ListByBudget was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockListByBudget.Lock()
	mock.calls.ListByBudget = append(mock.calls.ListByBudget, callInfo)
	mock.lockListByBudget.Unlock()
	return mock.ListByBudgetFunc(ctx, budgetID)
}

func (mock *lineItemRepoMock) ListByBudgetCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockListByBudget.RLock()
	calls := mock.calls.ListByBudget
	mock.lockListByBudget.RUnlock()
	return calls
}
