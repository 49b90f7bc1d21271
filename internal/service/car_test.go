package service_test

import (
	"context"
	"testing"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCarService_CreateCar(t *testing.T) {
	ctx := context.Background()

	t.Run("Success forces AVAILABLE", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		svc := service.NewCarService(carRepo, new(MockRentalRepo))

		carRepo.On("Create", ctx, mock.AnythingOfType("*domain.Car")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Car).ID = 2
			}).Return(nil)

		car, err := svc.CreateCar(ctx, 3, &domain.Car{
			Name:           "Compact",
			Plate:          "AB-123",
			DailyRateCents: 1000,
			Status:         domain.CarStatusRented,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(2), car.ID)
		assert.Equal(t, int32(3), car.ShopID)
		assert.Equal(t, domain.CarStatusAvailable, car.Status)
	})

	t.Run("Missing name", func(t *testing.T) {
		svc := service.NewCarService(new(MockCarRepo), new(MockRentalRepo))

		_, err := svc.CreateCar(ctx, 3, &domain.Car{DailyRateCents: 1000})
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	})

	t.Run("Negative rate", func(t *testing.T) {
		svc := service.NewCarService(new(MockCarRepo), new(MockRentalRepo))

		_, err := svc.CreateCar(ctx, 3, &domain.Car{Name: "Compact", DailyRateCents: -1})
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestCarService_SetCarStatus(t *testing.T) {
	ctx := context.Background()
	car := &domain.Car{ID: 2, ShopID: 3, Status: domain.CarStatusAvailable}

	t.Run("Maintenance allowed with no active rentals", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		rentalRepo := new(MockRentalRepo)
		svc := service.NewCarService(carRepo, rentalRepo)

		available := *car
		carRepo.On("GetByID", ctx, int32(2)).Return(&available, nil)
		rentalRepo.On("ListActiveByCar", ctx, int32(2)).Return([]domain.Rental{}, nil)
		carRepo.On("UpdateStatus", ctx, int32(2), domain.CarStatusAvailable, domain.CarStatusMaintenance).Return(nil)

		got, err := svc.SetCarStatus(ctx, 3, 2, domain.CarStatusMaintenance)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusMaintenance, got.Status)
	})

	t.Run("Blocked by active rentals", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		rentalRepo := new(MockRentalRepo)
		svc := service.NewCarService(carRepo, rentalRepo)

		available := *car
		carRepo.On("GetByID", ctx, int32(2)).Return(&available, nil)
		rentalRepo.On("ListActiveByCar", ctx, int32(2)).
			Return([]domain.Rental{{ID: 9, Status: domain.RentalStatusConfirmed}}, nil)

		_, err := svc.SetCarStatus(ctx, 3, 2, domain.CarStatusHidden)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		carRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RENTED not settable directly", func(t *testing.T) {
		svc := service.NewCarService(new(MockCarRepo), new(MockRentalRepo))

		_, err := svc.SetCarStatus(ctx, 3, 2, domain.CarStatusRented)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("Another shop's car reads as not found", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		svc := service.NewCarService(carRepo, new(MockRentalRepo))

		fresh := *car
		carRepo.On("GetByID", ctx, int32(2)).Return(&fresh, nil)

		_, err := svc.SetCarStatus(ctx, 99, 2, domain.CarStatusHidden)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
