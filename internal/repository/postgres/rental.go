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

const rentalColumns = `id, car_id, customer_id, shop_id, start_date, end_date, status, payment_status, total_amount_cents, insurance_rate_cents, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// CreateWithConflictCheck holds a per-car advisory lock for the duration of
// the transaction so that the conflict scan and the insert are one atomic
// unit. Concurrent bookings on the same car queue on the lock; the loser
// re-scans after the winner's insert is visible and gets the conflict error.
func (r *rentalRepository) CreateWithConflictCheck(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, bookingLockClass, rt.CarID); err != nil {
		return fmt.Errorf("lock car %d for booking: %w", rt.CarID, err)
	}

	var carStatus domain.CarStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM cars WHERE id = $1`, rt.CarID).Scan(&carStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select car %d for booking: %w", rt.CarID, err)
	}
	if carStatus != domain.CarStatusAvailable {
		return domain.ErrCarUnavailable
	}

	existing, err := listActiveByCarTx(ctx, tx, rt.CarID)
	if err != nil {
		return err
	}
	candidate := domain.DateRange{Start: rt.StartDate, End: rt.EndDate}
	if blocking, ok := domain.FindConflict(candidate, existing); ok {
		return &domain.BookingConflictError{Start: blocking.StartDate, End: blocking.EndDate}
	}

	now := time.Now()
	query := `INSERT INTO rentals (car_id, customer_id, shop_id, start_date, end_date, status, payment_status, total_amount_cents, insurance_rate_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, query, rt.CarID, rt.CustomerID, rt.ShopID,
		rt.StartDate, rt.EndDate, rt.Status, rt.PaymentStatus,
		rt.TotalAmountCents, rt.InsuranceRateCents, now, now).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	rt.CreatedOn = now
	rt.UpdatedOn = now

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.CarID, &rt.CustomerID, &rt.ShopID, &rt.StartDate, &rt.EndDate,
		&rt.Status, &rt.PaymentStatus, &rt.TotalAmountCents, &rt.InsuranceRateCents,
		&rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select rental %d: %w", id, err)
	}
	return rt, nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *rentalRepository) ListByShop(ctx context.Context, shopID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "shop_id", shopID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, scopeColumn string, scopeID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	where := ` FROM rentals WHERE ` + scopeColumn + ` = $1`
	args := []interface{}{scopeID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*)`+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count rentals: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+rentalColumns+where+` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.ShopID, &rt.StartDate, &rt.EndDate,
			&rt.Status, &rt.PaymentStatus, &rt.TotalAmountCents, &rt.InsuranceRateCents,
			&rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan rental row: %w", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListActiveByCar(ctx context.Context, carID int32) ([]domain.Rental, error) {
	return listActiveByCarTx(ctx, r.db, carID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func listActiveByCarTx(ctx context.Context, q querier, carID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE car_id = $1 AND status NOT IN ($2, $3, $4)
	          ORDER BY start_date`
	rows, err := q.QueryContext(ctx, query, carID,
		domain.RentalStatusCancelled, domain.RentalStatusCompleted, domain.RentalStatusReturnApproved)
	if err != nil {
		return nil, fmt.Errorf("list active rentals for car %d: %w", carID, err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.ShopID, &rt.StartDate, &rt.EndDate,
			&rt.Status, &rt.PaymentStatus, &rt.TotalAmountCents, &rt.InsuranceRateCents,
			&rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scan rental row: %w", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

// ApplyTransition performs the guarded status update and, when requested,
// the car flag change in one transaction. The WHERE status = from clause is
// the optimistic guard: a concurrent transition that committed first leaves
// zero rows to update here, and the caller gets ErrConflict to retry.
func (r *rentalRepository) ApplyTransition(ctx context.Context, t *repository.TransitionUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transition tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		t.To, time.Now(), t.RentalID, t.From)
	if err != nil {
		return fmt.Errorf("update rental %d status: %w", t.RentalID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rental %d status: %w", t.RentalID, err)
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	if t.CarStatus != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE cars SET status = $1, updated_on = $2 WHERE id = $3`,
			*t.CarStatus, time.Now(), t.CarID)
		if err != nil {
			return fmt.Errorf("update car %d status: %w", t.CarID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transition tx: %w", err)
	}
	return nil
}
