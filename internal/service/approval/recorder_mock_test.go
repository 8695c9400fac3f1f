package approval

import (
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	TransitionFunc   func(entity domain.EntityType, action domain.ApprovalAction)
	NotificationFunc func(delivered bool)

	calls struct {
		Transition []struct {
			Entity domain.EntityType
			Action domain.ApprovalAction
		}
		Notification []struct {
			Delivered bool
		}
	}
	lockTransition   sync.RWMutex
	lockNotification sync.RWMutex
}

func (mock *recorderMock) Transition(entity domain.EntityType, action domain.ApprovalAction) {
	if mock.TransitionFunc == nil {
		panic("recorderMock.TransitionFunc: method is nil but recorder.Transition was just called")
	}
	callInfo := struct {
		Entity domain.EntityType
		Action domain.ApprovalAction
	}{
		Entity: entity,
		Action: action,
	}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	mock.TransitionFunc(entity, action)
}

func (mock *recorderMock) TransitionCalls() []struct {
	Entity domain.EntityType
	Action domain.ApprovalAction
} {
	mock.lockTransition.RLock()
	calls := mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}

func (mock *recorderMock) Notification(delivered bool) {
	if mock.NotificationFunc == nil {
		panic("recorderMock.NotificationFunc: method is nil but recorder.Notification was just called")
	}
	callInfo := struct {
		Delivered bool
	}{
		Delivered: delivered,
	}
	mock.lockNotification.Lock()
	mock.calls.Notification = append(mock.calls.Notification, callInfo)
	mock.lockNotification.Unlock()
	mock.NotificationFunc(delivered)
}

func (mock *recorderMock) NotificationCalls() []struct {
	Delivered bool
} {
	mock.lockNotification.RLock()
	calls := mock.calls.Notification
	mock.lockNotification.RUnlock()
	return calls
}
