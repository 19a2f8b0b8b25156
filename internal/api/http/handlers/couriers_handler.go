package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parcel-delivery-service/internal/api/dto"
	"github.com/spec-kit/parcel-delivery-service/internal/service"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

// CouriersHandler manages courier endpoints.
type CouriersHandler struct {
	couriers courierUsecase
}

// NewCouriersHandler constructs handler.
func NewCouriersHandler(couriers courierUsecase) *CouriersHandler {
	return &CouriersHandler{couriers: couriers}
}

// ListAvailable GET /api/couriers.
func (h *CouriersHandler) ListAvailable(c *fiber.Ctx) error {
	couriers, err := h.couriers.ListAvailable(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CourierResponse, 0, len(couriers))
	for _, courier := range couriers {
		items = append(items, dto.NewCourierResponse(courier))
	}
	return c.JSON(items)
}

// Create POST /api/couriers.
func (h *CouriersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCourierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("name and phone required", nil)
	}

	courier, err := h.couriers.Create(c.UserContext(), service.CourierCreateInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCourierResponse(*courier))
}
