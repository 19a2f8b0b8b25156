package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-delivery-service/internal/cache"
	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
	"github.com/spec-kit/parcel-delivery-service/internal/repository"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

const (
	registrationLocation    = "Warehouse"
	registrationDescription = "Parcel registered in the system"

	trackingNumberAttempts = 5
)

// ParcelService coordinates parcel registration, lookup and status updates.
type ParcelService struct {
	parcels    repository.ParcelRepository
	txRunner   repository.TxRunner
	cache      *cache.TrackCache
	dispatcher events.Dispatcher
}

// ParcelDependencies bundles collaborators for the parcel service.
type ParcelDependencies struct {
	ParcelRepo repository.ParcelRepository
	TxRunner   repository.TxRunner
	Cache      *cache.TrackCache
	Dispatcher events.Dispatcher
}

// CustomerInput describes sender/recipient contact fields.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// RegisterParcelInput describes the registration payload.
type RegisterParcelInput struct {
	Sender      CustomerInput
	Recipient   CustomerInput
	Weight      float64
	Description string
}

// TrackingUpdateInput describes a status-change payload.
type TrackingUpdateInput struct {
	Status      domain.ParcelStatus
	Location    string
	Description string
}

// NewParcelService constructs the service.
func NewParcelService(deps ParcelDependencies) *ParcelService {
	return &ParcelService{
		parcels:    deps.ParcelRepo,
		txRunner:   deps.TxRunner,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Register creates the sender and recipient customers, the parcel and its
// initial tracking update in one transaction and returns the generated
// tracking number. Tracking numbers are retried a bounded number of times
// when the unique index reports a collision.
func (s *ParcelService) Register(ctx context.Context, input RegisterParcelInput) (string, error) {
	for attempt := 0; attempt < trackingNumberAttempts; attempt++ {
		trackingNumber := domain.NewTrackingNumber()

		var parcelID int64
		err := s.txRunner.WithTx(ctx, func(tx repository.Tx) error {
			sender := &domain.Customer{
				Name:    input.Sender.Name,
				Email:   input.Sender.Email,
				Phone:   input.Sender.Phone,
				Address: input.Sender.Address,
			}
			if err := tx.CreateCustomer(ctx, sender); err != nil {
				return err
			}

			recipient := &domain.Customer{
				Name:    input.Recipient.Name,
				Email:   input.Recipient.Email,
				Phone:   input.Recipient.Phone,
				Address: input.Recipient.Address,
			}
			if err := tx.CreateCustomer(ctx, recipient); err != nil {
				return err
			}

			parcel := &domain.Parcel{
				TrackingNumber: trackingNumber,
				Status:         domain.ParcelStatusPending,
				Weight:         input.Weight,
				Description:    input.Description,
				SenderID:       sender.ID,
				RecipientID:    recipient.ID,
			}
			if err := tx.CreateParcel(ctx, parcel); err != nil {
				return err
			}
			parcelID = parcel.ID

			initial := &domain.TrackingUpdate{
				ParcelID:    parcel.ID,
				Status:      domain.ParcelStatusPending,
				Location:    registrationLocation,
				Description: registrationDescription,
			}
			return tx.AppendTrackingUpdate(ctx, initial)
		})
		if err != nil {
			if repository.IsDuplicate(err) {
				continue
			}
			return "", apperrors.MapError(err)
		}

		s.publish(ctx, events.Event{
			Type:           events.EventParcelRegistered,
			TrackingNumber: trackingNumber,
			Payload: events.ParcelRegisteredPayload{
				ParcelID:    parcelID,
				Weight:      input.Weight,
				Description: input.Description,
			},
		})
		return trackingNumber, nil
	}

	return "", apperrors.NewConflict(
		fmt.Sprintf("could not allocate a unique tracking number after %d attempts", trackingNumberAttempts), nil)
}

// Track resolves the full parcel detail for an exact tracking number,
// read-through from the cache when one is configured.
func (s *ParcelService) Track(ctx context.Context, trackingNumber string) (*domain.ParcelDetail, error) {
	if detail, ok := s.cache.Get(ctx, trackingNumber); ok {
		return detail, nil
	}

	detail, err := s.parcels.GetDetailByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("parcel", map[string]any{"tracking_number": trackingNumber})
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.Set(ctx, trackingNumber, detail)
	return detail, nil
}

// AddUpdate appends a tracking update and moves the parcel to the given
// status. A terminal status releases the assigned courier; the parcel keeps
// its courier reference as a permanent last-courier record.
func (s *ParcelService) AddUpdate(ctx context.Context, trackingNumber string, input TrackingUpdateInput) error {
	if !input.Status.Valid() {
		return apperrors.NewValidationError("unrecognized status", map[string]any{"status": string(input.Status)})
	}

	var (
		oldStatus domain.ParcelStatus
		courierID *int64
	)
	err := s.txRunner.WithTx(ctx, func(tx repository.Tx) error {
		parcel, err := tx.GetParcelForUpdate(ctx, trackingNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("parcel", map[string]any{"tracking_number": trackingNumber})
			}
			return err
		}
		oldStatus = parcel.Status
		courierID = parcel.CourierID

		update := &domain.TrackingUpdate{
			ParcelID:    parcel.ID,
			Status:      input.Status,
			Location:    input.Location,
			Description: input.Description,
		}
		if err := tx.AppendTrackingUpdate(ctx, update); err != nil {
			return err
		}
		if err := tx.SetParcelStatus(ctx, parcel.ID, input.Status); err != nil {
			return err
		}

		if input.Status.Terminal() && parcel.CourierID != nil {
			courier, err := tx.GetCourierForUpdate(ctx, *parcel.CourierID)
			if err != nil {
				return err
			}
			if err := tx.SetCourierStatus(ctx, courier.ID, domain.CourierStatusAvailable); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:           events.EventParcelStatusChanged,
		TrackingNumber: trackingNumber,
		Payload: events.ParcelStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: input.Status,
			Location:  input.Location,
		},
	})
	if input.Status.Terminal() {
		s.publish(ctx, events.Event{
			Type:           events.EventParcelDelivered,
			TrackingNumber: trackingNumber,
			Payload:        events.ParcelDeliveredPayload{CourierID: courierID},
		})
	}
	return nil
}

func (s *ParcelService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
