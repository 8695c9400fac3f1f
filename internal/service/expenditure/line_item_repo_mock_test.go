package expenditure

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ lineItemRepo = &lineItemRepoMock{}

type lineItemRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
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
