package postgres_test

import (
	"context"
	"testing"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
	"drivehub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func paymentRow(p domain.Payment) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "rental_id", "amount_cents", "status", "proof_ref",
		"verified_by", "verified_at", "created_on", "updated_on"}).
		AddRow(p.ID, p.RentalID, p.AmountCents, p.Status, p.ProofRef, nil, nil, time.Now(), time.Now())
}

func TestPaymentRepository_SubmitProof(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert and mirror on rental", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WithArgs(int32(5), int32(2300), domain.PaymentStatusPendingVerification, "ev-abc", sqlmock.AnyArg(), domain.PaymentStatusPaid).
			WillReturnRows(paymentRow(domain.Payment{
				ID: 1, RentalID: 5, AmountCents: 2300,
				Status: domain.PaymentStatusPendingVerification, ProofRef: "ev-abc",
			}))
		mock.ExpectExec("UPDATE rentals SET payment_status").
			WithArgs(domain.PaymentStatusPendingVerification, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, err := repo.SubmitProof(ctx, 5, 2300, "ev-abc")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPendingVerification, p.Status)
		assert.Equal(t, "ev-abc", p.ProofRef)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Verified payment is immutable", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewPaymentRepository(db)

		// The DO UPDATE guard filters the row out; RETURNING yields nothing.
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err = repo.SubmitProof(ctx, 5, 2300, "ev-late")
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	})
}

func TestPaymentRepository_ApplyVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("Approval updates payment, rental and car", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewPaymentRepository(db)

		rented := domain.CarStatusRented
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusPaid, int32(3), now, int32(5), domain.PaymentStatusPendingVerification).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusConfirmed, domain.PaymentStatusPaid, sqlmock.AnyArg(), int32(5), domain.RentalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(rented, sqlmock.AnyArg(), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.ApplyVerification(ctx, &repository.VerificationUpdate{
			RentalID:            5,
			PaymentStatus:       domain.PaymentStatusPaid,
			RentalFrom:          domain.RentalStatusPending,
			RentalTo:            domain.RentalStatusConfirmed,
			RentalPaymentStatus: domain.PaymentStatusPaid,
			CarID:               2,
			CarStatus:           &rented,
			VerifiedBy:          3,
			VerifiedAt:          now,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No payment awaiting verification", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.ApplyVerification(ctx, &repository.VerificationUpdate{
			RentalID:      5,
			PaymentStatus: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, domain.ErrNoPendingVerification)
	})

	t.Run("Concurrent rental transition fails the decision", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewPaymentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.ApplyVerification(ctx, &repository.VerificationUpdate{
			RentalID:            5,
			PaymentStatus:       domain.PaymentStatusPaid,
			RentalFrom:          domain.RentalStatusPending,
			RentalTo:            domain.RentalStatusConfirmed,
			RentalPaymentStatus: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
