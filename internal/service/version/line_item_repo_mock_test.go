package version

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ lineItemRepo = &lineItemRepoMock{}

type lineItemRepoMock struct {
	ListByBudgetFunc func(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
	CreateFunc       func(ctx context.Context, li *domain.BudgetLineItem) (*domain.BudgetLineItem, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, params domain.LineItemUpdateParams) (*domain.BudgetLineItem, error)
	SoftDeleteFunc   func(ctx context.Context, id uuid.UUID) error

	calls struct {
		ListByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			Li  *domain.BudgetLineItem
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.LineItemUpdateParams
		}
		SoftDelete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockListByBudget sync.RWMutex
	lockCreate       sync.RWMutex
	lockUpdate       sync.RWMutex
	lockSoftDelete   sync.RWMutex
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

func (mock *lineItemRepoMock) Create(ctx context.Context, li *domain.BudgetLineItem) (*domain.BudgetLineItem, error) {
	if mock.CreateFunc == nil {
		panic("lineItemRepoMock.CreateFunc: method is nil but lineItemRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Li  *domain.BudgetLineItem
	}{
		Ctx: ctx,
		Li:  li,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, li)
}

func (mock *lineItemRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Li  *domain.BudgetLineItem
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *lineItemRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.LineItemUpdateParams) (*domain.BudgetLineItem, error) {
	if mock.UpdateFunc == nil {
		panic("lineItemRepoMock.UpdateFunc: method is nil but lineItemRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.LineItemUpdateParams
	}{
		Ctx:    ctx,
		ID:     id,
		Params: params,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *lineItemRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.LineItemUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *lineItemRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if mock.SoftDeleteFunc == nil {
		panic("lineItemRepoMock.SoftDeleteFunc: method is nil but lineItemRepo.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *lineItemRepoMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}
