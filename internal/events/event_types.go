package events

import (
	"time"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventParcelRegistered    EventType = "parcel_registered"
	EventCourierAssigned     EventType = "courier_assigned"
	EventParcelStatusChanged EventType = "parcel_status_changed"
	EventParcelDelivered     EventType = "parcel_delivered"
)

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	TrackingNumber string      `json:"tracking_number"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// ParcelRegisteredPayload payload.
type ParcelRegisteredPayload struct {
	ParcelID    int64   `json:"parcel_id"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// CourierAssignedPayload payload.
type CourierAssignedPayload struct {
	CourierID   int64  `json:"courier_id"`
	CourierName string `json:"courier_name"`
}

// ParcelStatusChangedPayload payload.
type ParcelStatusChangedPayload struct {
	OldStatus domain.ParcelStatus `json:"old_status"`
	NewStatus domain.ParcelStatus `json:"new_status"`
	Location  string              `json:"location"`
}

// ParcelDeliveredPayload payload.
type ParcelDeliveredPayload struct {
	CourierID *int64 `json:"courier_id,omitempty"`
}
