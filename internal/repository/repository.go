package repository

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	ListByShop(ctx context.Context, shopID int32, page, pageSize int32) ([]domain.Car, int32, error)
	// UpdateStatus is a guarded compare-and-swap; if the car no longer has
	// status from, it fails with domain.ErrConflict.
	UpdateStatus(ctx context.Context, id int32, from, to domain.CarStatus) error
}

// TransitionUpdate is one atomic rental status change. From guards against
// concurrent transitions: the update only lands if the rental still has that
// status. CarStatus, when non-nil, is the projector's output and is applied
// to the owning car in the same transaction.
type TransitionUpdate struct {
	RentalID  int32
	From      domain.RentalStatus
	To        domain.RentalStatus
	CarID     int32
	CarStatus *domain.CarStatus
}

type RentalRepository interface {
	// CreateWithConflictCheck runs the booking unit atomically: it
	// serializes on the car, verifies the car is bookable, scans the live
	// rental set for date conflicts and inserts the new rental. Fails with
	// domain.ErrNotFound, domain.ErrCarUnavailable or
	// *domain.BookingConflictError.
	CreateWithConflictCheck(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByShop(ctx context.Context, shopID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	// ListActiveByCar returns the non-released rentals for a car.
	ListActiveByCar(ctx context.Context, carID int32) ([]domain.Rental, error)
	ApplyTransition(ctx context.Context, t *TransitionUpdate) error
}

// VerificationUpdate is the atomic outcome of a shop's payment decision:
// payment status, the mirrored rental statuses and, when the projector says
// so, the car flag, all in one transaction.
type VerificationUpdate struct {
	RentalID            int32
	PaymentStatus       domain.PaymentStatus
	RentalFrom          domain.RentalStatus
	RentalTo            domain.RentalStatus
	RentalPaymentStatus domain.PaymentStatus
	CarID               int32
	CarStatus           *domain.CarStatus
	VerifiedBy          int32
	VerifiedAt          time.Time
}

type PaymentRepository interface {
	GetByRentalID(ctx context.Context, rentalID int32) (*domain.Payment, error)
	// SubmitProof creates or updates the rental's single payment row, moves
	// it to PENDING_VERIFICATION and mirrors the rental's payment_status,
	// atomically. A payment that is already PAID fails with
	// domain.ErrAlreadyPaid.
	SubmitProof(ctx context.Context, rentalID int32, amountCents int32, proofRef string) (*domain.Payment, error)
	ApplyVerification(ctx context.Context, v *VerificationUpdate) error
}

// ContactRepository resolves notification recipients. Profiles live in the
// external identity provider; this table is only the boundary cache the
// notifier reads.
type ContactRepository interface {
	GetContact(ctx context.Context, role domain.ActorRole, actorID int32) (email, name string, err error)
}
