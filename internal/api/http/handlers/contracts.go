package handlers

import (
	"context"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/service"
)

type parcelUsecase interface {
	Register(ctx context.Context, input service.RegisterParcelInput) (string, error)
	Track(ctx context.Context, trackingNumber string) (*domain.ParcelDetail, error)
	AddUpdate(ctx context.Context, trackingNumber string, input service.TrackingUpdateInput) error
}

type assignmentUsecase interface {
	AssignCourier(ctx context.Context, trackingNumber string, courierID int64) error
}

type courierUsecase interface {
	ListAvailable(ctx context.Context) ([]domain.Courier, error)
	Create(ctx context.Context, input service.CourierCreateInput) (*domain.Courier, error)
}
