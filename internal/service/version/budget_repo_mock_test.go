package version

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ budgetRepo = &budgetRepoMock{}

type budgetRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	GetForUpdateFunc   func(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, params domain.BudgetUpdateParams) (*domain.Budget, error)
	RecomputeTotalFunc func(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.BudgetUpdateParams
		}
		RecomputeTotal []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID        sync.RWMutex
	lockGetForUpdate   sync.RWMutex
	lockUpdate         sync.RWMutex
	lockRecomputeTotal sync.RWMutex
}

func (mock *budgetRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	if mock.GetByIDFunc == nil {
		panic("budgetRepoMock.GetByIDFunc: method is nil but budgetRepo.GetByID was just called")
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

func (mock *budgetRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *budgetRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	if mock.GetForUpdateFunc == nil {
		panic("budgetRepoMock.GetForUpdateFunc: method is nil but budgetRepo.GetForUpdate was just called")
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

func (mock *budgetRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *budgetRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.BudgetUpdateParams) (*domain.Budget, error) {
	if mock.UpdateFunc == nil {
		panic("budgetRepoMock.UpdateFunc: method is nil but budgetRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.BudgetUpdateParams
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

func (mock *budgetRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.BudgetUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *budgetRepoMock) RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	if mock.RecomputeTotalFunc == nil {
		panic("budgetRepoMock.RecomputeTotalFunc: method is nil but budgetRepo.RecomputeTotal was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockRecomputeTotal.Lock()
	mock.calls.RecomputeTotal = append(mock.calls.RecomputeTotal, callInfo)
	mock.lockRecomputeTotal.Unlock()
	return mock.RecomputeTotalFunc(ctx, id)
}

func (mock *budgetRepoMock) RecomputeTotalCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRecomputeTotal.RLock()
	calls := mock.calls.RecomputeTotal
	mock.lockRecomputeTotal.RUnlock()
	return calls
}
