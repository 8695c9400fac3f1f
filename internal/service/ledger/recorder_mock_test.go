package ledger

import (
	"sync"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	DebitAppliedFunc  func()
	DebitRejectedFunc func()
	BalanceDriftFunc  func(entity string)

	calls struct {
		DebitApplied  []struct{}
		DebitRejected []struct{}
		BalanceDrift  []struct {
			Entity string
		}
	}
	lockDebitApplied  sync.RWMutex
	lockDebitRejected sync.RWMutex
	lockBalanceDrift  sync.RWMutex
}

func (mock *recorderMock) DebitApplied() {
	if mock.DebitAppliedFunc == nil {
		panic("recorderMock.DebitAppliedFunc: method is nil but recorder.DebitApplied was just called")
	}
	mock.lockDebitApplied.Lock()
	mock.calls.DebitApplied = append(mock.calls.DebitApplied, struct{}{})
	mock.lockDebitApplied.Unlock()
	mock.DebitAppliedFunc()
}

func (mock *recorderMock) DebitAppliedCalls() []struct{} {
	mock.lockDebitApplied.RLock()
	calls := mock.calls.DebitApplied
	mock.lockDebitApplied.RUnlock()
	return calls
}

func (mock *recorderMock) DebitRejected() {
	if mock.DebitRejectedFunc == nil {
		panic("recorderMock.DebitRejectedFunc: method is nil but recorder.DebitRejected was just called")
	}
	mock.lockDebitRejected.Lock()
	mock.calls.DebitRejected = append(mock.calls.DebitRejected, struct{}{})
	mock.lockDebitRejected.Unlock()
	mock.DebitRejectedFunc()
}

func (mock *recorderMock) DebitRejectedCalls() []struct{} {
	mock.lockDebitRejected.RLock()
	calls := mock.calls.DebitRejected
	mock.lockDebitRejected.RUnlock()
	return calls
}

func (mock *recorderMock) BalanceDrift(entity string) {
	if mock.BalanceDriftFunc == nil {
		panic("recorderMock.BalanceDriftFunc: method is nil but recorder.BalanceDrift was just called")
	}
	callInfo := struct {
		Entity string
	}{
		Entity: entity,
	}
	mock.lockBalanceDrift.Lock()
	mock.calls.BalanceDrift = append(mock.calls.BalanceDrift, callInfo)
	mock.lockBalanceDrift.Unlock()
	mock.BalanceDriftFunc(entity)
}

func (mock *recorderMock) BalanceDriftCalls() []struct {
	Entity string
} {
	mock.lockBalanceDrift.RLock()
	calls := mock.calls.BalanceDrift
	mock.lockBalanceDrift.RUnlock()
	return calls
}
