package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/repository"
)

// fakeStore is an in-memory stand-in for the relational store. The runner
// snapshots it before each transaction and restores the snapshot when the
// transaction function fails, mirroring rollback semantics.
type fakeStore struct {
	customers map[int64]domain.Customer
	parcels   map[int64]domain.Parcel
	couriers  map[int64]domain.Courier
	updates   []domain.TrackingUpdate
	nextID    int64

	// duplicateParcelCreates forces this many CreateParcel calls to fail
	// with a unique-violation before succeeding.
	duplicateParcelCreates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[int64]domain.Customer),
		parcels:   make(map[int64]domain.Parcel),
		couriers:  make(map[int64]domain.Courier),
	}
}

func (s *fakeStore) addCourier(courier domain.Courier) {
	s.couriers[courier.ID] = courier
	if courier.ID > s.nextID {
		s.nextID = courier.ID
	}
}

func (s *fakeStore) addParcel(parcel domain.Parcel) {
	s.parcels[parcel.ID] = parcel
	if parcel.ID > s.nextID {
		s.nextID = parcel.ID
	}
}

func (s *fakeStore) parcelByTrackingNumber(trackingNumber string) (domain.Parcel, bool) {
	for _, parcel := range s.parcels {
		if parcel.TrackingNumber == trackingNumber {
			return parcel, true
		}
	}
	return domain.Parcel{}, false
}

func (s *fakeStore) updatesFor(parcelID int64) []domain.TrackingUpdate {
	out := make([]domain.TrackingUpdate, 0, len(s.updates))
	for _, update := range s.updates {
		if update.ParcelID == parcelID {
			out = append(out, update)
		}
	}
	return out
}

func (s *fakeStore) clone() *fakeStore {
	copied := &fakeStore{
		customers:              make(map[int64]domain.Customer, len(s.customers)),
		parcels:                make(map[int64]domain.Parcel, len(s.parcels)),
		couriers:               make(map[int64]domain.Courier, len(s.couriers)),
		updates:                append([]domain.TrackingUpdate(nil), s.updates...),
		nextID:                 s.nextID,
		duplicateParcelCreates: s.duplicateParcelCreates,
	}
	for id, customer := range s.customers {
		copied.customers[id] = customer
	}
	for id, parcel := range s.parcels {
		copied.parcels[id] = parcel
	}
	for id, courier := range s.couriers {
		copied.couriers[id] = courier
	}
	return copied
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) WithTx(_ context.Context, fn func(tx repository.Tx) error) error {
	snapshot := r.store.clone()
	if err := fn(&fakeTx{store: r.store}); err != nil {
		remaining := r.store.duplicateParcelCreates
		*r.store = *snapshot
		// the failure counter is test plumbing, not store state; rollback
		// must not resurrect already-consumed failures
		r.store.duplicateParcelCreates = remaining
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) CreateCustomer(_ context.Context, customer *domain.Customer) error {
	t.store.nextID++
	customer.ID = t.store.nextID
	customer.CreatedAt = time.Now().UTC()
	t.store.customers[customer.ID] = *customer
	return nil
}

func (t *fakeTx) CreateParcel(_ context.Context, parcel *domain.Parcel) error {
	if t.store.duplicateParcelCreates > 0 {
		t.store.duplicateParcelCreates--
		return fmt.Errorf("create parcel: %w", repository.ErrDuplicate)
	}
	if _, exists := t.store.parcelByTrackingNumber(parcel.TrackingNumber); exists {
		return fmt.Errorf("create parcel: %w", repository.ErrDuplicate)
	}
	t.store.nextID++
	parcel.ID = t.store.nextID
	parcel.CreatedAt = time.Now().UTC()
	t.store.parcels[parcel.ID] = *parcel
	return nil
}

func (t *fakeTx) AppendTrackingUpdate(_ context.Context, update *domain.TrackingUpdate) error {
	t.store.nextID++
	update.ID = t.store.nextID
	update.CreatedAt = time.Now().UTC()
	t.store.updates = append(t.store.updates, *update)
	return nil
}

func (t *fakeTx) GetParcelForUpdate(_ context.Context, trackingNumber string) (*domain.Parcel, error) {
	parcel, ok := t.store.parcelByTrackingNumber(trackingNumber)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &parcel, nil
}

func (t *fakeTx) GetCourierForUpdate(_ context.Context, id int64) (*domain.Courier, error) {
	courier, ok := t.store.couriers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &courier, nil
}

func (t *fakeTx) AssignCourier(_ context.Context, parcelID, courierID int64) error {
	parcel, ok := t.store.parcels[parcelID]
	if !ok {
		return pgx.ErrNoRows
	}
	parcel.CourierID = &courierID
	parcel.Status = domain.ParcelStatusAssigned
	t.store.parcels[parcelID] = parcel
	return nil
}

func (t *fakeTx) SetParcelStatus(_ context.Context, parcelID int64, status domain.ParcelStatus) error {
	parcel, ok := t.store.parcels[parcelID]
	if !ok {
		return pgx.ErrNoRows
	}
	parcel.Status = status
	t.store.parcels[parcelID] = parcel
	return nil
}

func (t *fakeTx) SetCourierStatus(_ context.Context, courierID int64, status domain.CourierStatus) error {
	courier, ok := t.store.couriers[courierID]
	if !ok {
		return pgx.ErrNoRows
	}
	courier.Status = status
	t.store.couriers[courierID] = courier
	return nil
}

// fakeParcelRepository serves reads for Track tests.
type fakeParcelRepository struct {
	detail *domain.ParcelDetail
}

func (r *fakeParcelRepository) GetDetailByTrackingNumber(_ context.Context, trackingNumber string) (*domain.ParcelDetail, error) {
	if r.detail == nil || r.detail.Parcel.TrackingNumber != trackingNumber {
		return nil, pgx.ErrNoRows
	}
	return r.detail, nil
}
