package domain

import "time"

// Customer is a named contact (sender or recipient) attached to a parcel.
// Rows are immutable after creation; one row per sender and per recipient,
// with no deduplication between parcels.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
