package snapshot

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ snapshotRepo = &snapshotRepoMock{}

type snapshotRepoMock struct {
	CreateFunc        func(ctx context.Context, s *domain.BudgetSnapshot) (*domain.BudgetSnapshot, error)
	ClearBaselineFunc func(ctx context.Context, budgetID uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.BudgetSnapshot, error)
	GetBaselineFunc   func(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetSnapshot, error)
	ListByBudgetFunc  func(ctx context.Context, budgetID uuid.UUID, typ *domain.SnapshotType) ([]domain.BudgetSnapshot, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.BudgetSnapshot
		}
		ClearBaseline []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetBaseline []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
		ListByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
			Typ      *domain.SnapshotType
		}
	}
	lockCreate        sync.RWMutex
	lockClearBaseline sync.RWMutex
	lockGetByID       sync.RWMutex
	lockGetBaseline   sync.RWMutex
	lockListByBudget  sync.RWMutex
}

func (mock *snapshotRepoMock) Create(ctx context.Context, s *domain.BudgetSnapshot) (*domain.BudgetSnapshot, error) {
	if mock.CreateFunc == nil {
		panic("snapshotRepoMock.CreateFunc: method is nil but snapshotRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.BudgetSnapshot
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *snapshotRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.BudgetSnapshot
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) ClearBaseline(ctx context.Context, budgetID uuid.UUID) error {
	if mock.ClearBaselineFunc == nil {
		panic("snapshotRepoMock.ClearBaselineFunc: method is nil but snapshotRepo.ClearBaseline was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockClearBaseline.Lock()
	mock.calls.ClearBaseline = append(mock.calls.ClearBaseline, callInfo)
	mock.lockClearBaseline.Unlock()
	return mock.ClearBaselineFunc(ctx, budgetID)
}

func (mock *snapshotRepoMock) ClearBaselineCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockClearBaseline.RLock()
	calls := mock.calls.ClearBaseline
	mock.lockClearBaseline.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetSnapshot, error) {
	if mock.GetByIDFunc == nil {
		panic("snapshotRepoMock.GetByIDFunc: method is nil but snapshotRepo.GetByID was just called")
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

func (mock *snapshotRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) GetBaseline(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetSnapshot, error) {
	if mock.GetBaselineFunc == nil {
		panic("snapshotRepoMock.GetBaselineFunc: method is nil but snapshotRepo.GetBaseline was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockGetBaseline.Lock()
	mock.calls.GetBaseline = append(mock.calls.GetBaseline, callInfo)
	mock.lockGetBaseline.Unlock()
	return mock.GetBaselineFunc(ctx, budgetID)
}

func (mock *snapshotRepoMock) GetBaselineCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockGetBaseline.RLock()
	calls := mock.calls.GetBaseline
	mock.lockGetBaseline.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) ListByBudget(ctx context.Context, budgetID uuid.UUID, typ *domain.SnapshotType) ([]domain.BudgetSnapshot, error) {
	if mock.ListByBudgetFunc == nil {
		panic("snapshotRepoMock.ListByBudgetFunc: method is nil but snapshotRepo.ListByBudget was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
		Typ      *domain.SnapshotType
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
		Typ:      typ,
	}
	mock.lockListByBudget.Lock()
	mock.calls.ListByBudget = append(mock.calls.ListByBudget, callInfo)
	mock.lockListByBudget.Unlock()
	return mock.ListByBudgetFunc(ctx, budgetID, typ)
}

func (mock *snapshotRepoMock) ListByBudgetCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
	Typ      *domain.SnapshotType
} {
	mock.lockListByBudget.RLock()
	calls := mock.calls.ListByBudget
	mock.lockListByBudget.RUnlock()
	return calls
}
