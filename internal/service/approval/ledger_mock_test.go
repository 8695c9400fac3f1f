package approval

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"sync"
)

var _ ledger = &ledgerMock{}

type ledgerMock struct {
	ReserveFunc func(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) error
	DebitFunc   func(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)

	calls struct {
		Reserve []struct {
			Ctx        context.Context
			LineItemID uuid.UUID
			Amount     decimal.Decimal
		}
		Debit []struct {
			Ctx        context.Context
			LineItemID uuid.UUID
			Amount     decimal.Decimal
		}
	}
	lockReserve sync.RWMutex
	lockDebit   sync.RWMutex
}

func (mock *ledgerMock) Reserve(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) error {
	if mock.ReserveFunc == nil {
		panic("ledgerMock.ReserveFunc: method is nil but ledger.Reserve was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		LineItemID uuid.UUID
		Amount     decimal.Decimal
	}{
		Ctx:        ctx,
		LineItemID: lineItemID,
		Amount:     amount,
	}
	mock.lockReserve.Lock()
	mock.calls.Reserve = append(mock.calls.Reserve, callInfo)
	mock.lockReserve.Unlock()
	return mock.ReserveFunc(ctx, lineItemID, amount)
}

func (mock *ledgerMock) ReserveCalls() []struct {
	Ctx        context.Context
	LineItemID uuid.UUID
	Amount     decimal.Decimal
} {
	mock.lockReserve.RLock()
	calls := mock.calls.Reserve
	mock.lockReserve.RUnlock()
	return calls
}

func (mock *ledgerMock) Debit(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if mock.DebitFunc == nil {
		panic("ledgerMock.DebitFunc: method is nil but ledger.Debit was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		LineItemID uuid.UUID
		Amount     decimal.Decimal
	}{
		Ctx:        ctx,
		LineItemID: lineItemID,
		Amount:     amount,
	}
	mock.lockDebit.Lock()
	mock.calls.Debit = append(mock.calls.Debit, callInfo)
	mock.lockDebit.Unlock()
	return mock.DebitFunc(ctx, lineItemID, amount)
}

func (mock *ledgerMock) DebitCalls() []struct {
	Ctx        context.Context
	LineItemID uuid.UUID
	Amount     decimal.Decimal
} {
	mock.lockDebit.RLock()
	calls := mock.calls.Debit
	mock.lockDebit.RUnlock()
	return calls
}
