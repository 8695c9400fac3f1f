package approval

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, userID uuid.UUID, event domain.NotificationEvent, payload map[string]any) error

	calls struct {
		Notify []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Event   domain.NotificationEvent
			Payload map[string]any
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, userID uuid.UUID, event domain.NotificationEvent, payload map[string]any) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Event   domain.NotificationEvent
		Payload map[string]any
	}{
		Ctx:     ctx,
		UserID:  userID,
		Event:   event,
		Payload: payload,
	}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, userID, event, payload)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Event   domain.NotificationEvent
	Payload map[string]any
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
