package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a structured-log handler to every event type,
// giving operators a flat audit trail of parcel lifecycle changes.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("tracking_number", event.TrackingNumber),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	for _, eventType := range []EventType{
		EventParcelRegistered,
		EventCourierAssigned,
		EventParcelStatusChanged,
		EventParcelDelivered,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
