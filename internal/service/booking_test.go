package service_test

import (
	"context"
	"testing"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	customerID := int32(7)
	carID := int32(2)

	start := time.Now().Add(48 * time.Hour).Truncate(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	car := &domain.Car{
		ID:                 carID,
		ShopID:             3,
		Name:               "Compact",
		DailyRateCents:     1000,
		InsuranceRateCents: 300,
		Status:             domain.CarStatusAvailable,
	}

	t.Run("Success", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		notifier := new(MockNotifier)
		svc := service.NewBookingService(rentalRepo, carRepo, notifier)

		carRepo.On("GetByID", ctx, carID).Return(car, nil)
		rentalRepo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*domain.Rental")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Rental).ID = 11
			}).Return(nil)
		notifier.On("BookingCreated", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rt, err := svc.CreateBooking(ctx, customerID, carID, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), rt.ID)
		assert.Equal(t, domain.RentalStatusPending, rt.Status)
		assert.Equal(t, domain.PaymentStatusPending, rt.PaymentStatus)
		// 2 days * 1000 + flat 300 insurance
		assert.Equal(t, int32(2300), rt.TotalAmountCents)
		// Shop and insurance rate snapshotted from the car
		assert.Equal(t, car.ShopID, rt.ShopID)
		assert.Equal(t, car.InsuranceRateCents, rt.InsuranceRateCents)
	})

	t.Run("End before start", func(t *testing.T) {
		svc := service.NewBookingService(new(MockRentalRepo), new(MockCarRepo), new(MockNotifier))

		_, err := svc.CreateBooking(ctx, customerID, carID, end, start)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "end_date", ve.Field)
	})

	t.Run("Retroactive start rejected", func(t *testing.T) {
		svc := service.NewBookingService(new(MockRentalRepo), new(MockCarRepo), new(MockNotifier))

		past := time.Now().Add(-72 * time.Hour)
		_, err := svc.CreateBooking(ctx, customerID, carID, past, past.Add(48*time.Hour))
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "start_date", ve.Field)
	})

	t.Run("Car not available", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		svc := service.NewBookingService(rentalRepo, carRepo, new(MockNotifier))

		hidden := *car
		hidden.Status = domain.CarStatusMaintenance
		carRepo.On("GetByID", ctx, carID).Return(&hidden, nil)

		_, err := svc.CreateBooking(ctx, customerID, carID, start, end)
		assert.ErrorIs(t, err, domain.ErrCarUnavailable)
		rentalRepo.AssertNotCalled(t, "CreateWithConflictCheck", mock.Anything, mock.Anything)
	})

	t.Run("Conflict from repository propagates", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		notifier := new(MockNotifier)
		svc := service.NewBookingService(rentalRepo, carRepo, notifier)

		carRepo.On("GetByID", ctx, carID).Return(car, nil)
		conflict := &domain.BookingConflictError{Start: start, End: end}
		rentalRepo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*domain.Rental")).Return(conflict)

		_, err := svc.CreateBooking(ctx, customerID, carID, start, end)
		var bce *domain.BookingConflictError
		assert.ErrorAs(t, err, &bce)
		notifier.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything)
	})

	t.Run("Notifier failure does not fail booking", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		notifier := new(MockNotifier)
		svc := service.NewBookingService(rentalRepo, carRepo, notifier)

		carRepo.On("GetByID", ctx, carID).Return(car, nil)
		rentalRepo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		notifier.On("BookingCreated", ctx, mock.AnythingOfType("*domain.Rental")).Return(assert.AnError)

		rt, err := svc.CreateBooking(ctx, customerID, carID, start, end)
		assert.NoError(t, err)
		assert.NotNil(t, rt)
	})
}

func TestBookingService_GetRental(t *testing.T) {
	ctx := context.Background()
	rt := &domain.Rental{ID: 5, CustomerID: 7, ShopID: 3}

	t.Run("Owner reads own rental", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewBookingService(rentalRepo, new(MockCarRepo), new(MockNotifier))
		rentalRepo.On("GetByID", ctx, int32(5)).Return(rt, nil)

		got, err := svc.GetRental(ctx, domain.Actor{Role: domain.RoleCustomer, ID: 7}, 5)
		assert.NoError(t, err)
		assert.Equal(t, rt, got)
	})

	t.Run("Shop reads rental on its car", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewBookingService(rentalRepo, new(MockCarRepo), new(MockNotifier))
		rentalRepo.On("GetByID", ctx, int32(5)).Return(rt, nil)

		_, err := svc.GetRental(ctx, domain.Actor{Role: domain.RoleShop, ID: 3}, 5)
		assert.NoError(t, err)
	})

	t.Run("Cross-tenant reads as not found", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewBookingService(rentalRepo, new(MockCarRepo), new(MockNotifier))
		rentalRepo.On("GetByID", ctx, int32(5)).Return(rt, nil)

		_, err := svc.GetRental(ctx, domain.Actor{Role: domain.RoleCustomer, ID: 99}, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = svc.GetRental(ctx, domain.Actor{Role: domain.RoleShop, ID: 99}, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_ListRentals(t *testing.T) {
	ctx := context.Background()

	t.Run("Customer scope with clamped pagination", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewBookingService(rentalRepo, new(MockCarRepo), new(MockNotifier))
		rentalRepo.On("ListByCustomer", ctx, int32(7), domain.RentalStatus(""), int32(1), int32(20)).
			Return([]domain.Rental{{ID: 1}}, int32(1), nil)

		rts, total, err := svc.ListRentals(ctx, domain.Actor{Role: domain.RoleCustomer, ID: 7}, "", 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, rts, 1)
	})

	t.Run("Shop scope", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewBookingService(rentalRepo, new(MockCarRepo), new(MockNotifier))
		rentalRepo.On("ListByShop", ctx, int32(3), domain.RentalStatusPending, int32(2), int32(10)).
			Return([]domain.Rental{}, int32(0), nil)

		_, _, err := svc.ListRentals(ctx, domain.Actor{Role: domain.RoleShop, ID: 3}, domain.RentalStatusPending, 2, 10)
		assert.NoError(t, err)
	})
}
