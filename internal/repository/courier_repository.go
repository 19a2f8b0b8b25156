package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
)

// CourierRepository encapsulates courier persistence.
type CourierRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Courier, error)
	ListAvailable(ctx context.Context) ([]domain.Courier, error)
	Create(ctx context.Context, courier *domain.Courier) error
}

type courierRepository struct {
	pool *pgxpool.Pool
}

// NewCourierRepository instantiates repository.
func NewCourierRepository(pool *pgxpool.Pool) CourierRepository {
	return &courierRepository{pool: pool}
}

func (r *courierRepository) GetByID(ctx context.Context, id int64) (*domain.Courier, error) {
	const query = `SELECT id, name, phone, status FROM couriers WHERE id=$1`
	var courier domain.Courier
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&courier.ID, &courier.Name, &courier.Phone, &courier.Status,
	); err != nil {
		return nil, err
	}
	return &courier, nil
}

func (r *courierRepository) ListAvailable(ctx context.Context) ([]domain.Courier, error) {
	const query = `SELECT id, name, phone, status FROM couriers WHERE status=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, domain.CourierStatusAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Courier, 0, 8)
	for rows.Next() {
		var courier domain.Courier
		if err := rows.Scan(&courier.ID, &courier.Name, &courier.Phone, &courier.Status); err != nil {
			return nil, err
		}
		result = append(result, courier)
	}
	return result, rows.Err()
}

func (r *courierRepository) Create(ctx context.Context, courier *domain.Courier) error {
	const query = `INSERT INTO couriers (name, phone, status) VALUES ($1,$2,$3) RETURNING id`
	return r.pool.QueryRow(ctx, query, courier.Name, courier.Phone, courier.Status).Scan(&courier.ID)
}
