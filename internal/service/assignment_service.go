package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
	"github.com/spec-kit/parcel-delivery-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

// AssignmentService owns the courier-assignment workflow. Both sides of the
// assignment (parcel status and courier availability) change inside one
// transaction, with the courier row locked, so the busy/available flag can
// never drift from the active assignment.
type AssignmentService struct {
	txRunner   repository.TxRunner
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TxRunner   repository.TxRunner
	Dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{txRunner: deps.TxRunner, dispatcher: deps.Dispatcher}
}

// AssignCourier assigns an available courier to the parcel: courier goes
// busy, parcel goes assigned, and a tracking update naming the courier is
// appended. Preconditions are checked in order; the first failure wins.
func (s *AssignmentService) AssignCourier(ctx context.Context, trackingNumber string, courierID int64) error {
	var courierName string
	err := s.txRunner.WithTx(ctx, func(tx repository.Tx) error {
		parcel, err := tx.GetParcelForUpdate(ctx, trackingNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("parcel", map[string]any{"tracking_number": trackingNumber})
			}
			return err
		}

		courier, err := tx.GetCourierForUpdate(ctx, courierID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("courier", map[string]any{"courier_id": courierID})
			}
			return err
		}
		if courier.Status != domain.CourierStatusAvailable {
			return apperrors.NewConflict("Courier is not available", map[string]any{"courier_id": courierID})
		}
		courierName = courier.Name

		if err := tx.AssignCourier(ctx, parcel.ID, courier.ID); err != nil {
			return err
		}
		if err := tx.SetCourierStatus(ctx, courier.ID, domain.CourierStatusBusy); err != nil {
			return err
		}

		update := &domain.TrackingUpdate{
			ParcelID:    parcel.ID,
			Status:      domain.ParcelStatusAssigned,
			Location:    registrationLocation,
			Description: fmt.Sprintf("Assigned to courier: %s", courierName),
		}
		return tx.AppendTrackingUpdate(ctx, update)
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:             uuid.NewString(),
			Type:           events.EventCourierAssigned,
			TrackingNumber: trackingNumber,
			Timestamp:      time.Now().UTC(),
			Payload: events.CourierAssignedPayload{
				CourierID:   courierID,
				CourierName: courierName,
			},
		})
	}
	return nil
}
