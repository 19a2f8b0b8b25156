package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-delivery-service/internal/api/dto"
	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/service"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

// ParcelsHandler manages parcel endpoints.
type ParcelsHandler struct {
	parcels     parcelUsecase
	assignments assignmentUsecase
}

// NewParcelsHandler constructs handler.
func NewParcelsHandler(parcels parcelUsecase, assignments assignmentUsecase) *ParcelsHandler {
	return &ParcelsHandler{parcels: parcels, assignments: assignments}
}

// Create POST /api/parcels.
func (h *ParcelsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateParcelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateCreateParcel(req); err != nil {
		return err
	}

	input := service.RegisterParcelInput{
		Sender:      customerInput(*req.Sender),
		Recipient:   customerInput(*req.Recipient),
		Weight:      *req.Weight,
		Description: req.Description,
	}
	trackingNumber, err := h.parcels.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateParcelResponse{
		Message:        "Parcel created successfully",
		TrackingNumber: trackingNumber,
	})
}

// Track GET /api/parcels/track/:tracking_number.
func (h *ParcelsHandler) Track(c *fiber.Ctx) error {
	detail, err := h.parcels.Track(c.UserContext(), c.Params("tracking_number"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewParcelDetailResponse(detail))
}

// AssignCourier POST /api/parcels/:tracking_number/assign-courier.
func (h *ParcelsHandler) AssignCourier(c *fiber.Ctx) error {
	var req dto.AssignCourierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CourierID == nil {
		return apperrors.NewValidationError("Courier ID is required", nil)
	}

	if err := h.assignments.AssignCourier(c.UserContext(), c.Params("tracking_number"), *req.CourierID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Courier assigned successfully"})
}

// AddUpdate POST /api/parcels/:tracking_number/update.
func (h *ParcelsHandler) AddUpdate(c *fiber.Ctx) error {
	var req dto.AddTrackingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" || strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("status, location, description required", nil)
	}

	input := service.TrackingUpdateInput{
		Status:      domain.ParcelStatus(req.Status),
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.parcels.AddUpdate(c.UserContext(), c.Params("tracking_number"), input); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Tracking update added successfully"})
}

func validateCreateParcel(req dto.CreateParcelRequest) error {
	if req.Sender == nil || req.Recipient == nil {
		return apperrors.NewValidationError("sender and recipient required", nil)
	}
	parties := []struct {
		field   string
		payload *dto.CustomerPayload
	}{
		{"sender", req.Sender},
		{"recipient", req.Recipient},
	}
	for _, p := range parties {
		if strings.TrimSpace(p.payload.Name) == "" ||
			strings.TrimSpace(p.payload.Email) == "" ||
			strings.TrimSpace(p.payload.Phone) == "" ||
			strings.TrimSpace(p.payload.Address) == "" {
			return apperrors.NewValidationError(p.field+" name, email, phone, address required", nil)
		}
	}
	if req.Weight == nil || *req.Weight <= 0 {
		return apperrors.NewValidationError("weight must be a positive number", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description required", nil)
	}
	return nil
}

func customerInput(payload dto.CustomerPayload) service.CustomerInput {
	return service.CustomerInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	}
}
