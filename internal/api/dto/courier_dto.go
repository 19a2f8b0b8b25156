package dto

import "github.com/spec-kit/parcel-delivery-service/internal/domain"

// CreateCourierRequest payload.
type CreateCourierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CourierResponse is the wire shape of a courier.
type CourierResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// NewCourierResponse maps a courier into its wire shape.
func NewCourierResponse(courier domain.Courier) CourierResponse {
	return CourierResponse{
		ID:     courier.ID,
		Name:   courier.Name,
		Phone:  courier.Phone,
		Status: string(courier.Status),
	}
}
