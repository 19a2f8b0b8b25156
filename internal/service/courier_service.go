package service

import (
	"context"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

// CourierService serves courier queries and creation.
type CourierService struct {
	couriers repository.CourierRepository
}

// NewCourierService constructs the service.
func NewCourierService(couriers repository.CourierRepository) *CourierService {
	return &CourierService{couriers: couriers}
}

// CourierCreateInput describes a new courier.
type CourierCreateInput struct {
	Name  string
	Phone string
}

// ListAvailable returns all couriers currently free for assignment.
func (s *CourierService) ListAvailable(ctx context.Context) ([]domain.Courier, error) {
	couriers, err := s.couriers.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return couriers, nil
}

// Create registers a new courier, available by default.
func (s *CourierService) Create(ctx context.Context, input CourierCreateInput) (*domain.Courier, error) {
	courier := &domain.Courier{
		Name:   input.Name,
		Phone:  input.Phone,
		Status: domain.CourierStatusAvailable,
	}
	if err := s.couriers.Create(ctx, courier); err != nil {
		return nil, apperrors.MapError(err)
	}
	return courier, nil
}
