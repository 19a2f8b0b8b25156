package dto

import (
	"time"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
)

// CustomerPayload carries sender/recipient contact fields.
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateParcelRequest payload. Weight is a pointer so a missing field is
// distinguishable from zero.
type CreateParcelRequest struct {
	Sender      *CustomerPayload `json:"sender"`
	Recipient   *CustomerPayload `json:"recipient"`
	Weight      *float64         `json:"weight"`
	Description string           `json:"description"`
}

// CreateParcelResponse confirms registration.
type CreateParcelResponse struct {
	Message        string `json:"message"`
	TrackingNumber string `json:"tracking_number"`
}

// AssignCourierRequest payload.
type AssignCourierRequest struct {
	CourierID *int64 `json:"courier_id"`
}

// AddTrackingUpdateRequest payload.
type AddTrackingUpdateRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CustomerResponse embeds customer contact data in parcel responses.
type CustomerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// TrackingUpdateResponse is one history entry.
type TrackingUpdateResponse struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ParcelDetailResponse is the full nested track representation.
type ParcelDetailResponse struct {
	ID              int64                    `json:"id"`
	TrackingNumber  string                   `json:"tracking_number"`
	Status          string                   `json:"status"`
	Weight          float64                  `json:"weight"`
	Description     string                   `json:"description"`
	CreatedAt       time.Time                `json:"created_at"`
	Sender          CustomerResponse         `json:"sender"`
	Recipient       CustomerResponse         `json:"recipient"`
	Courier         *CourierResponse         `json:"courier"`
	TrackingUpdates []TrackingUpdateResponse `json:"tracking_updates"`
}

// NewParcelDetailResponse maps a resolved parcel into its wire shape.
func NewParcelDetailResponse(detail *domain.ParcelDetail) ParcelDetailResponse {
	resp := ParcelDetailResponse{
		ID:             detail.Parcel.ID,
		TrackingNumber: detail.Parcel.TrackingNumber,
		Status:         string(detail.Parcel.Status),
		Weight:         detail.Parcel.Weight,
		Description:    detail.Parcel.Description,
		CreatedAt:      detail.Parcel.CreatedAt,
		Sender:         newCustomerResponse(detail.Sender),
		Recipient:      newCustomerResponse(detail.Recipient),
	}
	if detail.Courier != nil {
		courier := NewCourierResponse(*detail.Courier)
		resp.Courier = &courier
	}
	resp.TrackingUpdates = make([]TrackingUpdateResponse, 0, len(detail.Updates))
	for _, update := range detail.Updates {
		resp.TrackingUpdates = append(resp.TrackingUpdates, TrackingUpdateResponse{
			ID:          update.ID,
			Status:      string(update.Status),
			Location:    update.Location,
			Description: update.Description,
			Timestamp:   update.CreatedAt,
		})
	}
	return resp
}

func newCustomerResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:      customer.ID,
		Name:    customer.Name,
		Email:   customer.Email,
		Phone:   customer.Phone,
		Address: customer.Address,
	}
}
