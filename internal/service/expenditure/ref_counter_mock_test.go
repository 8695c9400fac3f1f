package expenditure

import (
	"context"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ refCounter = &refCounterMock{}

type refCounterMock struct {
	NextFunc func(ctx context.Context, scope domain.ReferenceScope, period domain.ReferencePeriod) (int64, error)

	calls struct {
		Next []struct {
			Ctx    context.Context
			Scope  domain.ReferenceScope
			Period domain.ReferencePeriod
		}
	}
	lockNext sync.RWMutex
}

func (mock *refCounterMock) Next(ctx context.Context, scope domain.ReferenceScope, period domain.ReferencePeriod) (int64, error) {
	if mock.NextFunc == nil {
		panic("refCounterMock.NextFunc: method is nil but refCounter.Next was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Scope  domain.ReferenceScope
		Period domain.ReferencePeriod
	}{
		Ctx:    ctx,
		Scope:  scope,
		Period: period,
	}
	mock.lockNext.Lock()
	mock.calls.Next = append(mock.calls.Next, callInfo)
	mock.lockNext.Unlock()
	return mock.NextFunc(ctx, scope, period)
}

func (mock *refCounterMock) NextCalls() []struct {
	Ctx    context.Context
	Scope  domain.ReferenceScope
	Period domain.ReferencePeriod
} {
	mock.lockNext.RLock()
	calls := mock.calls.Next
	mock.lockNext.RUnlock()
	return calls
}
