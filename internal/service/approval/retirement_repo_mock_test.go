package approval

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ retirementRepo = &retirementRepoMock{}

type retirementRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, change domain.StatusChange) error

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateStatus []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Change domain.StatusChange
		}
	}
	lockGetForUpdate sync.RWMutex
	lockUpdateStatus sync.RWMutex
}

func (mock *retirementRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error) {
	if mock.GetForUpdateFunc == nil {
		panic("retirementRepoMock.GetForUpdateFunc: method is nil but retirementRepo.GetForUpdate was just called")
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

func (mock *retirementRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *retirementRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error {
	if mock.UpdateStatusFunc == nil {
		panic("retirementRepoMock.UpdateStatusFunc: method is nil but retirementRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Change domain.StatusChange
	}{
		Ctx:    ctx,
		ID:     id,
		Change: change,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, change)
}

func (mock *retirementRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Change domain.StatusChange
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
