package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type carService struct {
	carRepo    repository.CarRepository
	rentalRepo repository.RentalRepository
}

func NewCarService(carRepo repository.CarRepository, rentalRepo repository.RentalRepository) CarService {
	return &carService{
		carRepo:    carRepo,
		rentalRepo: rentalRepo,
	}
}

func (s *carService) CreateCar(ctx context.Context, shopID int32, car *domain.Car) (*domain.Car, error) {
	if car.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if car.DailyRateCents < 0 {
		return nil, &domain.ValidationError{Field: "daily_rate_cents", Reason: "must not be negative"}
	}
	if car.InsuranceRateCents < 0 {
		return nil, &domain.ValidationError{Field: "insurance_rate_cents", Reason: "must not be negative"}
	}

	car.ShopID = shopID
	car.Status = domain.CarStatusAvailable
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, carID int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, carID)
}

func (s *carService) ListCars(ctx context.Context, shopID int32, page, pageSize int32) ([]domain.Car, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.carRepo.ListByShop(ctx, shopID, page, pageSize)
}

// SetCarStatus handles the shop-managed statuses. RENTED is never settable
// directly, it only ever comes out of the projector; and a car with live
// rentals cannot be pulled for maintenance or hidden out from under them.
func (s *carService) SetCarStatus(ctx context.Context, shopID, carID int32, target domain.CarStatus) (*domain.Car, error) {
	switch target {
	case domain.CarStatusAvailable, domain.CarStatusMaintenance, domain.CarStatusHidden, domain.CarStatusDeleted:
	default:
		return nil, &domain.ValidationError{Field: "status", Reason: "cannot be set directly"}
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.ShopID != shopID {
		return nil, domain.ErrNotFound
	}

	if target != domain.CarStatusAvailable {
		active, err := s.rentalRepo.ListActiveByCar(ctx, carID)
		if err != nil {
			return nil, err
		}
		if len(active) > 0 {
			return nil, &domain.ValidationError{Field: "status", Reason: "car has active rentals"}
		}
	}

	if err := s.carRepo.UpdateStatus(ctx, carID, car.Status, target); err != nil {
		return nil, err
	}
	car.Status = target
	return car, nil
}
