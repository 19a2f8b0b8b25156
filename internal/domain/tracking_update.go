package domain

import "time"

// TrackingUpdate is an immutable, timestamped event recording a
// status/location/description change for a parcel. Updates are append-only;
// insertion order is chronological order.
type TrackingUpdate struct {
	ID          int64
	ParcelID    int64
	Status      ParcelStatus
	Location    string
	Description string
	CreatedAt   time.Time
}
