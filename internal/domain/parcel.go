package domain

import "time"

// ParcelStatus enumerates lifecycle states for parcels.
type ParcelStatus string

const (
	ParcelStatusPending        ParcelStatus = "pending"
	ParcelStatusAssigned       ParcelStatus = "assigned"
	ParcelStatusPickedUp       ParcelStatus = "picked_up"
	ParcelStatusInTransit      ParcelStatus = "in_transit"
	ParcelStatusOutForDelivery ParcelStatus = "out_for_delivery"
	ParcelStatusDelivered      ParcelStatus = "delivered"
	ParcelStatusFailed         ParcelStatus = "failed"
)

// Valid reports whether the status belongs to the recognized set.
func (s ParcelStatus) Valid() bool {
	switch s {
	case ParcelStatusPending, ParcelStatusAssigned, ParcelStatusPickedUp,
		ParcelStatusInTransit, ParcelStatusOutForDelivery,
		ParcelStatusDelivered, ParcelStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status ends the delivery lifecycle and
// releases the assigned courier.
func (s ParcelStatus) Terminal() bool {
	return s == ParcelStatusDelivered
}

// Parcel is the aggregate for tracked shipments.
type Parcel struct {
	ID             int64
	TrackingNumber string
	Status         ParcelStatus
	Weight         float64
	Description    string
	SenderID       int64
	RecipientID    int64
	CourierID      *int64
	CreatedAt      time.Time
}

// ParcelDetail is the fully resolved view of a parcel: the row itself plus
// its sender, recipient, optional courier and ordered update history.
type ParcelDetail struct {
	Parcel    Parcel
	Sender    Customer
	Recipient Customer
	Courier   *Courier
	Updates   []TrackingUpdate
}
