package postgres

import (
	"database/sql"
	"errors"

	"drivehub-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.ContactRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		CarRepository:     NewCarRepository(db),
		RentalRepository:  NewRentalRepository(db),
		PaymentRepository: NewPaymentRepository(db),
		ContactRepository: NewContactRepository(db),
	}
}

// bookingLockClass namespaces the per-car advisory lock keys so they cannot
// collide with other advisory lock users on the same database.
const bookingLockClass = 4217

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
