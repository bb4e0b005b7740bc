package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/events"
)

// StartAuditWorker subscribes an audit-trail handler to every security event
// the core publishes.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	audited := []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventUserRegistered,
		events.EventTokenRevoked,
		events.EventAdmissionRejected,
	}

	audit := logger.Named("audit")
	for _, eventType := range audited {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			audit.Info("security event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.String("subject", event.Subject),
				zap.Time("at", event.Timestamp),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
