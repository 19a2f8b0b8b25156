package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
)

// ParcelRepository encapsulates read-only parcel persistence.
type ParcelRepository interface {
	GetDetailByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.ParcelDetail, error)
}

type parcelRepository struct {
	pool *pgxpool.Pool
}

// NewParcelRepository instantiates repository.
func NewParcelRepository(pool *pgxpool.Pool) ParcelRepository {
	return &parcelRepository{pool: pool}
}

// GetDetailByTrackingNumber resolves a parcel with its sender, recipient,
// optional courier and full ordered update history. The lookup is exact and
// case-sensitive. Returns pgx.ErrNoRows when no parcel matches.
func (r *parcelRepository) GetDetailByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.ParcelDetail, error) {
	const parcelQuery = `
        SELECT id, tracking_number, status, weight, description, sender_id, recipient_id, courier_id, created_at
        FROM parcels WHERE tracking_number=$1`

	var parcel domain.Parcel
	if err := r.pool.QueryRow(ctx, parcelQuery, trackingNumber).Scan(
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

	detail := &domain.ParcelDetail{Parcel: parcel}

	sender, err := r.fetchCustomer(ctx, parcel.SenderID)
	if err != nil {
		return nil, err
	}
	detail.Sender = *sender

	recipient, err := r.fetchCustomer(ctx, parcel.RecipientID)
	if err != nil {
		return nil, err
	}
	detail.Recipient = *recipient

	if parcel.CourierID != nil {
		var courier domain.Courier
		const courierQuery = `SELECT id, name, phone, status FROM couriers WHERE id=$1`
		if err := r.pool.QueryRow(ctx, courierQuery, *parcel.CourierID).Scan(
			&courier.ID, &courier.Name, &courier.Phone, &courier.Status,
		); err != nil {
			return nil, err
		}
		detail.Courier = &courier
	}

	updates, err := r.fetchUpdates(ctx, parcel.ID)
	if err != nil {
		return nil, err
	}
	detail.Updates = updates

	return detail, nil
}

func (r *parcelRepository) fetchCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `SELECT id, name, email, phone, address, created_at FROM customers WHERE id=$1`
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *parcelRepository) fetchUpdates(ctx context.Context, parcelID int64) ([]domain.TrackingUpdate, error) {
	const query = `
        SELECT id, parcel_id, status, location, description, created_at
        FROM tracking_updates WHERE parcel_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, parcelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUpdates(rows)
}

func scanUpdates(rows pgx.Rows) ([]domain.TrackingUpdate, error) {
	result := make([]domain.TrackingUpdate, 0, 4)
	for rows.Next() {
		var update domain.TrackingUpdate
		if err := rows.Scan(
			&update.ID,
			&update.ParcelID,
			&update.Status,
			&update.Location,
			&update.Description,
			&update.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, update)
	}
	return result, rows.Err()
}
