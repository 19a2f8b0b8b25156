package domain

// CourierStatus enumerates courier availability.
type CourierStatus string

const (
	CourierStatusAvailable CourierStatus = "available"
	CourierStatusBusy      CourierStatus = "busy"
)

// Valid reports whether the status belongs to the recognized set.
func (s CourierStatus) Valid() bool {
	return s == CourierStatusAvailable || s == CourierStatusBusy
}

// Courier is a delivery agent assignable to at most one active parcel.
type Courier struct {
	ID     int64
	Name   string
	Phone  string
	Status CourierStatus
}
