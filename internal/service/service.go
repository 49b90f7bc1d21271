package service

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

// BookingService owns the booking transaction: availability and conflict
// validation, pricing and the initial PENDING rental.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID, carID int32, start, end time.Time) (*domain.Rental, error)
	GetRental(ctx context.Context, actor domain.Actor, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, actor domain.Actor, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
}

// TransitionResult is the post-transition status pair returned to callers.
type TransitionResult struct {
	RentalStatus domain.RentalStatus `json:"rental_status"`
	CarStatus    domain.CarStatus    `json:"car_status"`
}

// LifecycleService drives rental status transitions through the state
// machine and the car status projector.
type LifecycleService interface {
	Transition(ctx context.Context, actor domain.Actor, rentalID int32, target domain.RentalStatus) (*TransitionResult, error)
}

// VerificationResult reports the outcome of a shop's payment decision.
type VerificationResult struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	RentalStatus  domain.RentalStatus  `json:"rental_status"`
}

// PaymentService is the reconciliation workflow: proof submission by the
// customer, approval or rejection by the shop.
type PaymentService interface {
	SubmitProof(ctx context.Context, customerID, rentalID int32, evidenceRef string) (*domain.Payment, error)
	Verify(ctx context.Context, shopID, rentalID int32, approve bool) (*VerificationResult, error)
}

// CarService covers shop-side fleet management.
type CarService interface {
	CreateCar(ctx context.Context, shopID int32, car *domain.Car) (*domain.Car, error)
	GetCar(ctx context.Context, carID int32) (*domain.Car, error)
	ListCars(ctx context.Context, shopID int32, page, pageSize int32) ([]domain.Car, int32, error)
	SetCarStatus(ctx context.Context, shopID, carID int32, target domain.CarStatus) (*domain.Car, error)
}

// Notifier delivers best-effort notifications to the counterparty of a
// rental event. Failures are logged by implementations and never fail the
// operation that triggered them.
type Notifier interface {
	BookingCreated(ctx context.Context, rt *domain.Rental) error
	RentalStatusChanged(ctx context.Context, rt *domain.Rental, from, to domain.RentalStatus) error
	PaymentProofSubmitted(ctx context.Context, rt *domain.Rental) error
	PaymentVerified(ctx context.Context, rt *domain.Rental, approved bool) error
}
