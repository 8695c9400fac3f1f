package version

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ versionRepo = &versionRepoMock{}

type versionRepoMock struct {
	NextNumberFunc   func(ctx context.Context, budgetID uuid.UUID) (int, error)
	ClearCurrentFunc func(ctx context.Context, budgetID uuid.UUID) error
	CreateFunc       func(ctx context.Context, v *domain.BudgetVersion) (*domain.BudgetVersion, error)
	GetByIDFunc      func(ctx context.Context, budgetID uuid.UUID, id uuid.UUID) (*domain.BudgetVersion, error)
	GetCurrentFunc   func(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetVersion, error)
	ListByBudgetFunc func(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetVersion, error)

	calls struct {
		NextNumber []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		ClearCurrent []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			V   *domain.BudgetVersion
		}
		GetByID []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
			ID       uuid.UUID
		}
		GetCurrent []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		ListByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
	}
	lockNextNumber   sync.RWMutex
	lockClearCurrent sync.RWMutex
	lockCreate       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockGetCurrent   sync.RWMutex
	lockListByBudget sync.RWMutex
}

func (mock *versionRepoMock) NextNumber(ctx context.Context, budgetID uuid.UUID) (int, error) {
	if mock.NextNumberFunc == nil {
		panic("versionRepoMock.NextNumberFunc: method is nil but versionRepo.NextNumber was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockNextNumber.Lock()
	mock.calls.NextNumber = append(mock.calls.NextNumber, callInfo)
	mock.lockNextNumber.Unlock()
	return mock.NextNumberFunc(ctx, budgetID)
}

func (mock *versionRepoMock) NextNumberCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockNextNumber.RLock()
	calls := mock.calls.NextNumber
	mock.lockNextNumber.RUnlock()
	return calls
}

func (mock *versionRepoMock) ClearCurrent(ctx context.Context, budgetID uuid.UUID) error {
	if mock.ClearCurrentFunc == nil {
		panic("versionRepoMock.ClearCurrentFunc: method is nil but versionRepo.ClearCurrent was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockClearCurrent.Lock()
	mock.calls.ClearCurrent = append(mock.calls.ClearCurrent, callInfo)
	mock.lockClearCurrent.Unlock()
	return mock.ClearCurrentFunc(ctx, budgetID)
}

func (mock *versionRepoMock) ClearCurrentCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockClearCurrent.RLock()
	calls := mock.calls.ClearCurrent
	mock.lockClearCurrent.RUnlock()
	return calls
}

func (mock *versionRepoMock) Create(ctx context.Context, v *domain.BudgetVersion) (*domain.BudgetVersion, error) {
	if mock.CreateFunc == nil {
		panic("versionRepoMock.CreateFunc: method is nil but versionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		V   *domain.BudgetVersion
	}{
		Ctx: ctx,
		V:   v,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, v)
}

func (mock *versionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	V   *domain.BudgetVersion
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *versionRepoMock) GetByID(ctx context.Context, budgetID uuid.UUID, id uuid.UUID) (*domain.BudgetVersion, error) {
	if mock.GetByIDFunc == nil {
		panic("versionRepoMock.GetByIDFunc: method is nil but versionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
		ID       uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
		ID:       id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, budgetID, id)
}

func (mock *versionRepoMock) GetByIDCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
	ID       uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *versionRepoMock) GetCurrent(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetVersion, error) {
	if mock.GetCurrentFunc == nil {
		panic("versionRepoMock.GetCurrentFunc: method is nil but versionRepo.GetCurrent was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockGetCurrent.Lock()
	mock.calls.GetCurrent = append(mock.calls.GetCurrent, callInfo)
	mock.lockGetCurrent.Unlock()
	return mock.GetCurrentFunc(ctx, budgetID)
}

func (mock *versionRepoMock) GetCurrentCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockGetCurrent.RLock()
	calls := mock.calls.GetCurrent
	mock.lockGetCurrent.RUnlock()
	return calls
}

func (mock *versionRepoMock) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetVersion, error) {
	if mock.ListByBudgetFunc == nil {
		panic("versionRepoMock.ListByBudgetFunc: method is nil but versionRepo.ListByBudget was just called")
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

func (mock *versionRepoMock) ListByBudgetCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockListByBudget.RLock()
	calls := mock.calls.ListByBudget
	mock.lockListByBudget.RUnlock()
	return calls
}
