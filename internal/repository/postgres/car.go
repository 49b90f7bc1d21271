package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (shop_id, name, plate, daily_rate_cents, insurance_rate_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, car.ShopID, car.Name, car.Plate,
		car.DailyRateCents, car.InsuranceRateCents, car.Status, now, now).Scan(&car.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ValidationError{Field: "plate", Reason: "already registered"}
		}
		return fmt.Errorf("insert car: %w", err)
	}
	car.CreatedOn = now
	car.UpdatedOn = now
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	car := &domain.Car{}
	query := `SELECT id, shop_id, name, plate, daily_rate_cents, insurance_rate_cents, status, created_on, updated_on
	          FROM cars WHERE id = $1 AND status <> $2`
	err := r.db.QueryRowContext(ctx, query, id, domain.CarStatusDeleted).Scan(
		&car.ID, &car.ShopID, &car.Name, &car.Plate, &car.DailyRateCents,
		&car.InsuranceRateCents, &car.Status, &car.CreatedOn, &car.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select car %d: %w", id, err)
	}
	return car, nil
}

func (r *carRepository) ListByShop(ctx context.Context, shopID int32, page, pageSize int32) ([]domain.Car, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM cars WHERE shop_id = $1 AND status <> $2`
	if err := r.db.QueryRowContext(ctx, countQuery, shopID, domain.CarStatusDeleted).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count cars for shop %d: %w", shopID, err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, shop_id, name, plate, daily_rate_cents, insurance_rate_cents, status, created_on, updated_on
	          FROM cars WHERE shop_id = $1 AND status <> $2
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, shopID, domain.CarStatusDeleted, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars for shop %d: %w", shopID, err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.ShopID, &car.Name, &car.Plate, &car.DailyRateCents,
			&car.InsuranceRateCents, &car.Status, &car.CreatedOn, &car.UpdatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan car row: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, count, rows.Err()
}

func (r *carRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.CarStatus) error {
	query := `UPDATE cars SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("update car %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update car %d status: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrConflict
	}
	return nil
}
