package budget

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ ledger = &ledgerMock{}

type ledgerMock struct {
	AllocateFunc  func(li *domain.BudgetLineItem, amount decimal.Decimal) error
	RecomputeFunc func(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)

	calls struct {
		Allocate []struct {
			Li     *domain.BudgetLineItem
			Amount decimal.Decimal
		}
		Recompute []struct {
			Ctx        context.Context
			LineItemID uuid.UUID
		}
	}
	lockAllocate  sync.RWMutex
	lockRecompute sync.RWMutex
}

func (mock *ledgerMock) Allocate(li *domain.BudgetLineItem, amount decimal.Decimal) error {
	if mock.AllocateFunc == nil {
		panic("ledgerMock.AllocateFunc: method is nil but ledger.Allocate was just called")
	}
	callInfo := struct {
		Li     *domain.BudgetLineItem
		Amount decimal.Decimal
	}{
		Li:     li,
		Amount: amount,
	}
	mock.lockAllocate.Lock()
	mock.calls.Allocate = append(mock.calls.Allocate, callInfo)
	mock.lockAllocate.Unlock()
	return mock.AllocateFunc(li, amount)
}

func (mock *ledgerMock) AllocateCalls() []struct {
	Li     *domain.BudgetLineItem
	Amount decimal.Decimal
} {
	mock.lockAllocate.RLock()
	calls := mock.calls.Allocate
	mock.lockAllocate.RUnlock()
	return calls
}

func (mock *ledgerMock) Recompute(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error) {
	if mock.RecomputeFunc == nil {
		panic("ledgerMock.RecomputeFunc: method is nil but ledger.Recompute was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		LineItemID uuid.UUID
	}{
		Ctx:        ctx,
		LineItemID: lineItemID,
	}
	mock.lockRecompute.Lock()
	mock.calls.Recompute = append(mock.calls.Recompute, callInfo)
	mock.lockRecompute.Unlock()
	return mock.RecomputeFunc(ctx, lineItemID)
}

func (mock *ledgerMock) RecomputeCalls() []struct {
	Ctx        context.Context
	LineItemID uuid.UUID
} {
	mock.lockRecompute.RLock()
	calls := mock.calls.Recompute
	mock.lockRecompute.RUnlock()
	return calls
}
