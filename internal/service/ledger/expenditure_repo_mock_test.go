package ledger

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"sync"
)

var _ expenditureRepo = &expenditureRepoMock{}

type expenditureRepoMock struct {
	SumApprovedFunc         func(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)
	SumApprovedByBudgetFunc func(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error)

	calls struct {
		SumApproved []struct {
			Ctx        context.Context
			LineItemID uuid.UUID
		}
		SumApprovedByBudget []struct {
			Ctx      context.Context
			BudgetID uuid.UUID
		}
	}
	lockSumApproved         sync.RWMutex
	lockSumApprovedByBudget sync.RWMutex
}

func (mock *expenditureRepoMock) SumApproved(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error) {
	if mock.SumApprovedFunc == nil {
		panic("expenditureRepoMock.SumApprovedFunc: method is nil but expenditureRepo.SumApproved was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		LineItemID uuid.UUID
	}{
		Ctx:        ctx,
		LineItemID: lineItemID,
	}
	mock.lockSumApproved.Lock()
	mock.calls.SumApproved = append(mock.calls.SumApproved, callInfo)
	mock.lockSumApproved.Unlock()
	return mock.SumApprovedFunc(ctx, lineItemID)
}

func (mock *expenditureRepoMock) SumApprovedCalls() []struct {
	Ctx        context.Context
	LineItemID uuid.UUID
} {
	mock.lockSumApproved.RLock()
	calls := mock.calls.SumApproved
	mock.lockSumApproved.RUnlock()
	return calls
}

func (mock *expenditureRepoMock) SumApprovedByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	if mock.SumApprovedByBudgetFunc == nil {
		panic("expenditureRepoMock.SumApprovedByBudgetFunc: method is nil but expenditureRepo.SumApprovedByBudget was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		BudgetID uuid.UUID
	}{
		Ctx:      ctx,
		BudgetID: budgetID,
	}
	mock.lockSumApprovedByBudget.Lock()
	mock.calls.SumApprovedByBudget = append(mock.calls.SumApprovedByBudget, callInfo)
	mock.lockSumApprovedByBudget.Unlock()
	return mock.SumApprovedByBudgetFunc(ctx, budgetID)
}

func (mock *expenditureRepoMock) SumApprovedByBudgetCalls() []struct {
	Ctx      context.Context
	BudgetID uuid.UUID
} {
	mock.lockSumApprovedByBudget.RLock()
	calls := mock.calls.SumApprovedByBudget
	mock.lockSumApprovedByBudget.RUnlock()
	return calls
}
