package service_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
	"github.com/spec-kit/parcel-delivery-service/internal/service"
	apperrors "github.com/spec-kit/parcel-delivery-service/pkg/util"
)

func registerInput() service.RegisterParcelInput {
	return service.RegisterParcelInput{
		Sender: service.CustomerInput{
			Name: "Alice", Email: "alice@example.com", Phone: "+1-555-1111", Address: "1 First St",
		},
		Recipient: service.CustomerInput{
			Name: "Bob", Email: "bob@example.com", Phone: "+1-555-2222", Address: "2 Second Ave",
		},
		Weight:      2.5,
		Description: "Books",
	}
}

func newParcelService(store *fakeStore, dispatcher events.Dispatcher) *service.ParcelService {
	return service.NewParcelService(service.ParcelDependencies{
		ParcelRepo: &fakeParcelRepository{},
		TxRunner:   &fakeTxRunner{store: store},
		Dispatcher: dispatcher,
	})
}

func TestParcelService_Register(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newParcelService(store, nil)

	trackingNumber, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), trackingNumber)

	require.Len(t, store.customers, 2)

	parcel, ok := store.parcelByTrackingNumber(trackingNumber)
	require.True(t, ok)
	assert.Equal(t, domain.ParcelStatusPending, parcel.Status)
	assert.Equal(t, 2.5, parcel.Weight)
	assert.Nil(t, parcel.CourierID)

	updates := store.updatesFor(parcel.ID)
	require.Len(t, updates, 1)
	assert.Equal(t, domain.ParcelStatusPending, updates[0].Status)
	assert.Equal(t, "Warehouse", updates[0].Location)
	assert.Equal(t, "Parcel registered in the system", updates[0].Description)
}

func TestParcelService_Register_DistinctTrackingNumbers(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newParcelService(store, nil)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		trackingNumber, err := svc.Register(context.Background(), registerInput())
		require.NoError(t, err)
		seen[trackingNumber] = struct{}{}
	}
	require.Len(t, seen, 20)
}

func TestParcelService_Register_RetriesOnCollision(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.duplicateParcelCreates = 2
	svc := newParcelService(store, nil)

	trackingNumber, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotEmpty(t, trackingNumber)

	// the two colliding attempts rolled back; only the final attempt persisted
	require.Len(t, store.parcels, 1)
	require.Len(t, store.customers, 2)
}

func TestParcelService_Register_GivesUpAfterBoundedAttempts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.duplicateParcelCreates = 100
	svc := newParcelService(store, nil)

	_, err := svc.Register(context.Background(), registerInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Empty(t, store.parcels)
}

func TestParcelService_Track_NotFound(t *testing.T) {
	t.Parallel()

	svc := newParcelService(newFakeStore(), nil)

	_, err := svc.Track(context.Background(), "NOPE1234")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestParcelService_AddUpdate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addParcel(domain.Parcel{ID: 1, TrackingNumber: "AB12CD34", Status: domain.ParcelStatusPending})
	svc := newParcelService(store, nil)

	err := svc.AddUpdate(context.Background(), "AB12CD34", service.TrackingUpdateInput{
		Status: "teleported", Location: "Hub", Description: "??",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Empty(t, store.updates)

	parcel, _ := store.parcelByTrackingNumber("AB12CD34")
	assert.Equal(t, domain.ParcelStatusPending, parcel.Status)
}

func TestParcelService_AddUpdate_UnknownParcel(t *testing.T) {
	t.Parallel()

	svc := newParcelService(newFakeStore(), nil)

	err := svc.AddUpdate(context.Background(), "MISSING1", service.TrackingUpdateInput{
		Status: domain.ParcelStatusInTransit, Location: "Hub", Description: "Left hub",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestParcelService_AddUpdate_MovesStatusAndAppends(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addParcel(domain.Parcel{ID: 1, TrackingNumber: "AB12CD34", Status: domain.ParcelStatusAssigned})
	svc := newParcelService(store, nil)

	err := svc.AddUpdate(context.Background(), "AB12CD34", service.TrackingUpdateInput{
		Status: domain.ParcelStatusInTransit, Location: "Hub", Description: "Left hub",
	})
	require.NoError(t, err)

	parcel, _ := store.parcelByTrackingNumber("AB12CD34")
	assert.Equal(t, domain.ParcelStatusInTransit, parcel.Status)

	updates := store.updatesFor(1)
	require.Len(t, updates, 1)
	assert.Equal(t, domain.ParcelStatusInTransit, updates[0].Status)
	assert.Equal(t, "Hub", updates[0].Location)
}

func TestParcelService_AddUpdate_DeliveredReleasesCourier(t *testing.T) {
	t.Parallel()

	courierID := int64(7)
	store := newFakeStore()
	store.addCourier(domain.Courier{ID: courierID, Name: "John Smith", Phone: "+1-555-0101", Status: domain.CourierStatusBusy})
	store.addParcel(domain.Parcel{ID: 10, TrackingNumber: "AB12CD34", Status: domain.ParcelStatusInTransit, CourierID: &courierID})

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	var published []events.Event
	for _, eventType := range []events.EventType{events.EventParcelStatusChanged, events.EventParcelDelivered} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			published = append(published, event)
			return nil
		})
	}
	svc := newParcelService(store, dispatcher)

	err := svc.AddUpdate(context.Background(), "AB12CD34", service.TrackingUpdateInput{
		Status: domain.ParcelStatusDelivered, Location: "Door", Description: "Handed over",
	})
	require.NoError(t, err)

	parcel, _ := store.parcelByTrackingNumber("AB12CD34")
	assert.Equal(t, domain.ParcelStatusDelivered, parcel.Status)
	// the courier reference stays as a permanent last-courier record
	require.NotNil(t, parcel.CourierID)
	assert.Equal(t, courierID, *parcel.CourierID)

	assert.Equal(t, domain.CourierStatusAvailable, store.couriers[courierID].Status)

	require.Len(t, published, 2)
	assert.Equal(t, events.EventParcelStatusChanged, published[0].Type)
	assert.Equal(t, events.EventParcelDelivered, published[1].Type)
}

func TestParcelService_AddUpdate_DeliveredWithoutCourier(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addParcel(domain.Parcel{ID: 1, TrackingNumber: "AB12CD34", Status: domain.ParcelStatusPending})
	svc := newParcelService(store, nil)

	err := svc.AddUpdate(context.Background(), "AB12CD34", service.TrackingUpdateInput{
		Status: domain.ParcelStatusDelivered, Location: "Door", Description: "Left at door",
	})
	require.NoError(t, err)

	parcel, _ := store.parcelByTrackingNumber("AB12CD34")
	assert.Equal(t, domain.ParcelStatusDelivered, parcel.Status)
}
