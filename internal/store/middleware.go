package store

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rowloom/internal/domain"
)

// LoggingMiddleware logs every dispatched action at debug level and passes
// it through unchanged.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(action domain.Action) domain.Action {
		logger.Debug("dispatch", zap.String("action", string(action.ActionType())))
		return action
	}
}

// NotificationIDMiddleware stamps ShowNotification actions that arrive
// without an ID or creation time, so callers can dispatch bare messages.
func NotificationIDMiddleware() Middleware {
	return func(action domain.Action) domain.Action {
		a, ok := action.(domain.ShowNotificationAction)
		if !ok {
			return action
		}
		if a.Notification.ID == "" {
			a.Notification.ID = uuid.NewString()
		}
		if a.Notification.CreatedAt.IsZero() {
			a.Notification.CreatedAt = time.Now()
		}
		if a.Notification.Level == "" {
			a.Notification.Level = domain.NotifyInfo
		}
		return a
	}
}
