package ledger

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ lineItemRepo = &lineItemRepoMock{}

type lineItemRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
	ListByBudgetFunc func(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
	SetBalanceFunc   func(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	ListIDsFunc      func(ctx context.Context) ([]uuid.UUID, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		SetBalance []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Balance decimal.Decimal
		}
		ListIDs []struct {
			Ctx context.Context
		}
	}
	lockGetByID      sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockListByBudget sync.RWMutex
	lockSetBalance   sync.RWMutex
	lockListIDs      sync.RWMutex
}

func (mock *lineItemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error) {
	if mock.GetByIDFunc == nil {
		panic("lineItemRepoMock.GetByIDFunc: method is nil but lineItemRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *lineItemRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *lineItemRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error) {
	if mock.GetForUpdateFunc == nil {
		panic("lineItemRepoMock.GetForUpdateFunc: method is nil but lineItemRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *lineItemRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
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

func (mock *lineItemRepoMock) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if mock.SetBalanceFunc == nil {
		panic("lineItemRepoMock.SetBalanceFunc: method is nil but lineItemRepo.SetBalance was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Balance decimal.Decimal
	}{
		Ctx:     ctx,
		ID:      id,
		Balance: balance,
	}
	mock.lockSetBalance.Lock()
	mock.calls.SetBalance = append(mock.calls.SetBalance, callInfo)
	mock.lockSetBalance.Unlock()
	return mock.SetBalanceFunc(ctx, id, balance)
}

func (mock *lineItemRepoMock) SetBalanceCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Balance decimal.Decimal
} {
	mock.lockSetBalance.RLock()
	calls := mock.calls.SetBalance
	mock.lockSetBalance.RUnlock()
	return calls
}

func (mock *lineItemRepoMock) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("lineItemRepoMock.ListIDsFunc: method is nil but lineItemRepo.ListIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx)
}

func (mock *lineItemRepoMock) ListIDsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}
