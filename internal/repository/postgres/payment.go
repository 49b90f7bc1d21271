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

const paymentColumns = `id, rental_id, amount_cents, status, proof_ref, verified_by, verified_at, created_on, updated_on`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByRentalID(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(
		&p.ID, &p.RentalID, &p.AmountCents, &p.Status, &p.ProofRef,
		&p.VerifiedBy, &p.VerifiedAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select payment for rental %d: %w", rentalID, err)
	}
	return p, nil
}

// SubmitProof upserts the rental's single payment row. The partial DO UPDATE
// guard (status <> 'PAID') makes resubmission after rejection legal while a
// verified payment stays immutable; when the guard filters the update out,
// RETURNING yields no row and that maps to ErrAlreadyPaid.
func (r *paymentRepository) SubmitProof(ctx context.Context, rentalID int32, amountCents int32, proofRef string) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin proof tx: %w", err)
	}
	defer tx.Rollback()

	p := &domain.Payment{}
	query := `INSERT INTO payments (rental_id, amount_cents, status, proof_ref, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          ON CONFLICT (rental_id) DO UPDATE
	              SET amount_cents = EXCLUDED.amount_cents,
	                  proof_ref    = EXCLUDED.proof_ref,
	                  status       = EXCLUDED.status,
	                  updated_on   = EXCLUDED.updated_on
	              WHERE payments.status <> $6
	          RETURNING ` + paymentColumns
	err = tx.QueryRowContext(ctx, query, rentalID, amountCents,
		domain.PaymentStatusPendingVerification, proofRef, time.Now(), domain.PaymentStatusPaid).Scan(
		&p.ID, &p.RentalID, &p.AmountCents, &p.Status, &p.ProofRef,
		&p.VerifiedBy, &p.VerifiedAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAlreadyPaid
	}
	if err != nil {
		return nil, fmt.Errorf("upsert payment for rental %d: %w", rentalID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rentals SET payment_status = $1, updated_on = $2 WHERE id = $3`,
		domain.PaymentStatusPendingVerification, time.Now(), rentalID)
	if err != nil {
		return nil, fmt.Errorf("mirror payment status on rental %d: %w", rentalID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit proof tx: %w", err)
	}
	return p, nil
}

// ApplyVerification lands the shop's decision as one transaction. The
// payment update is guarded on PENDING_VERIFICATION and the rental update on
// the status the caller read, so concurrent decisions or transitions leave
// zero rows and surface as typed errors instead of silent overwrites.
func (r *paymentRepository) ApplyVerification(ctx context.Context, v *repository.VerificationUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin verification tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = $1, verified_by = $2, verified_at = $3, updated_on = $3
		 WHERE rental_id = $4 AND status = $5`,
		v.PaymentStatus, v.VerifiedBy, v.VerifiedAt, v.RentalID, domain.PaymentStatusPendingVerification)
	if err != nil {
		return fmt.Errorf("update payment for rental %d: %w", v.RentalID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment for rental %d: %w", v.RentalID, err)
	}
	if affected == 0 {
		return domain.ErrNoPendingVerification
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, payment_status = $2, updated_on = $3 WHERE id = $4 AND status = $5`,
		v.RentalTo, v.RentalPaymentStatus, time.Now(), v.RentalID, v.RentalFrom)
	if err != nil {
		return fmt.Errorf("update rental %d on verification: %w", v.RentalID, err)
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rental %d on verification: %w", v.RentalID, err)
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	if v.CarStatus != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE cars SET status = $1, updated_on = $2 WHERE id = $3`,
			*v.CarStatus, time.Now(), v.CarID)
		if err != nil {
			return fmt.Errorf("update car %d on verification: %w", v.CarID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit verification tx: %w", err)
	}
	return nil
}
