package service

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type bookingService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	notifier   Notifier
}

func NewBookingService(rentalRepo repository.RentalRepository, carRepo repository.CarRepository, notifier Notifier) BookingService {
	return &bookingService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		notifier:   notifier,
	}
}

// CreateBooking validates the request, prices it and hands the atomic
// check-and-insert to the repository. The car status and conflict checks
// here are a fast path only; the repository re-checks both under the per-car
// lock, which is the authoritative answer under concurrency.
func (s *bookingService) CreateBooking(ctx context.Context, customerID, carID int32, start, end time.Time) (*domain.Rental, error) {
	if !end.After(start) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}
	today := time.Now().Truncate(24 * time.Hour)
	if start.Before(today) {
		return nil, &domain.ValidationError{Field: "start_date", Reason: "must not be in the past"}
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.Status != domain.CarStatusAvailable {
		return nil, domain.ErrCarUnavailable
	}

	total, err := domain.TotalAmountCents(start, end, car.DailyRateCents, car.InsuranceRateCents)
	if err != nil {
		return nil, err
	}

	rt := &domain.Rental{
		CarID:      carID,
		CustomerID: customerID,
		// Shop and insurance rate are snapshotted here; later car edits
		// must not change the terms of an existing rental.
		ShopID:             car.ShopID,
		StartDate:          start,
		EndDate:            end,
		Status:             domain.RentalStatusPending,
		PaymentStatus:      domain.PaymentStatusPending,
		TotalAmountCents:   total,
		InsuranceRateCents: car.InsuranceRateCents,
	}
	if err := s.rentalRepo.CreateWithConflictCheck(ctx, rt); err != nil {
		return nil, err
	}

	_ = s.notifier.BookingCreated(ctx, rt)
	return rt, nil
}

func (s *bookingService) GetRental(ctx context.Context, actor domain.Actor, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	// Cross-tenant access reads as absence, not as a permission error.
	if !actor.Owns(rt) {
		return nil, domain.ErrNotFound
	}
	return rt, nil
}

func (s *bookingService) ListRentals(ctx context.Context, actor domain.Actor, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	switch actor.Role {
	case domain.RoleCustomer:
		return s.rentalRepo.ListByCustomer(ctx, actor.ID, status, page, pageSize)
	case domain.RoleShop:
		return s.rentalRepo.ListByShop(ctx, actor.ID, status, page, pageSize)
	}
	return nil, 0, domain.ErrForbidden
}
