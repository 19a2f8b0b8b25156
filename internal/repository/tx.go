package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/persistence"
)

// Tx is the write surface available inside one transaction. Every mutating
// request performs all of its writes through a single Tx so that failures
// roll back as one unit.
type Tx interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	CreateParcel(ctx context.Context, parcel *domain.Parcel) error
	AppendTrackingUpdate(ctx context.Context, update *domain.TrackingUpdate) error
	GetParcelForUpdate(ctx context.Context, trackingNumber string) (*domain.Parcel, error)
	GetCourierForUpdate(ctx context.Context, id int64) (*domain.Courier, error)
	AssignCourier(ctx context.Context, parcelID, courierID int64) error
	SetParcelStatus(ctx context.Context, parcelID int64, status domain.ParcelStatus) error
	SetCourierStatus(ctx context.Context, courierID int64, status domain.CourierStatus) error
}

// TxRunner opens a transaction and executes fn within it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

type pgTxRunner struct {
	pg *persistence.Postgres
}

// NewTxRunner wraps a Postgres handle into a TxRunner.
func NewTxRunner(pg *persistence.Postgres) TxRunner {
	return &pgTxRunner{pg: pg}
}

func (r *pgTxRunner) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return r.pg.WithinTx(ctx, func(tx pgx.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

type txRepo struct {
	tx pgx.Tx
}

func (r *txRepo) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, email, phone, address)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := r.tx.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Address,
	).Scan(&customer.ID, &customer.CreatedAt); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *txRepo) CreateParcel(ctx context.Context, parcel *domain.Parcel) error {
	const query = `
        INSERT INTO parcels (tracking_number, status, weight, description, sender_id, recipient_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	if err := r.tx.QueryRow(ctx, query,
		parcel.TrackingNumber, parcel.Status, parcel.Weight, parcel.Description,
		parcel.SenderID, parcel.RecipientID,
	).Scan(&parcel.ID, &parcel.CreatedAt); err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("create parcel: %w", ErrDuplicate)
		}
		return fmt.Errorf("create parcel: %w", err)
	}
	return nil
}

func (r *txRepo) AppendTrackingUpdate(ctx context.Context, update *domain.TrackingUpdate) error {
	const query = `
        INSERT INTO tracking_updates (parcel_id, status, location, description)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := r.tx.QueryRow(ctx, query,
		update.ParcelID, update.Status, update.Location, update.Description,
	).Scan(&update.ID, &update.CreatedAt); err != nil {
		return fmt.Errorf("append tracking update: %w", err)
	}
	return nil
}

// GetParcelForUpdate locks the parcel row for the rest of the transaction.
func (r *txRepo) GetParcelForUpdate(ctx context.Context, trackingNumber string) (*domain.Parcel, error) {
	const query = `
        SELECT id, tracking_number, status, weight, description, sender_id, recipient_id, courier_id, created_at
        FROM parcels WHERE tracking_number=$1
        FOR UPDATE`
	var parcel domain.Parcel
	if err := r.tx.QueryRow(ctx, query, trackingNumber).Scan(
		&parcel.ID,
		&parcel.TrackingNumber,
		&parcel.Status,
		&parcel.Weight,
		&parcel.Description,
		&parcel.SenderID,
		&parcel.RecipientID,
		&parcel.CourierID,
		&parcel.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// GetCourierForUpdate locks the courier row so concurrent assignments of the
// same courier serialize instead of double-booking.
func (r *txRepo) GetCourierForUpdate(ctx context.Context, id int64) (*domain.Courier, error) {
	const query = `SELECT id, name, phone, status FROM couriers WHERE id=$1 FOR UPDATE`
	var courier domain.Courier
	if err := r.tx.QueryRow(ctx, query, id).Scan(
		&courier.ID, &courier.Name, &courier.Phone, &courier.Status,
	); err != nil {
		return nil, err
	}
	return &courier, nil
}

func (r *txRepo) AssignCourier(ctx context.Context, parcelID, courierID int64) error {
	const query = `UPDATE parcels SET courier_id=$1, status=$2 WHERE id=$3`
	cmd, err := r.tx.Exec(ctx, query, courierID, domain.ParcelStatusAssigned, parcelID)
	if err != nil {
		return fmt.Errorf("assign courier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *txRepo) SetParcelStatus(ctx context.Context, parcelID int64, status domain.ParcelStatus) error {
	const query = `UPDATE parcels SET status=$1 WHERE id=$2`
	cmd, err := r.tx.Exec(ctx, query, status, parcelID)
	if err != nil {
		return fmt.Errorf("set parcel status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *txRepo) SetCourierStatus(ctx context.Context, courierID int64, status domain.CourierStatus) error {
	const query = `UPDATE couriers SET status=$1 WHERE id=$2`
	cmd, err := r.tx.Exec(ctx, query, status, courierID)
	if err != nil {
		return fmt.Errorf("set courier status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
