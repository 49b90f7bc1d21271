package service_test

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepo) ListByShop(ctx context.Context, shopID, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, shopID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}

func (m *MockCarRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.CarStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithConflictCheck(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListByShop(ctx context.Context, shopID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, shopID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentalRepo) ListActiveByCar(ctx context.Context, carID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) ApplyTransition(ctx context.Context, t *repository.TransitionUpdate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByRentalID(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) SubmitProof(ctx context.Context, rentalID, amountCents int32, proofRef string) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID, amountCents, proofRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) ApplyVerification(ctx context.Context, v *repository.VerificationUpdate) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockNotifier) RentalStatusChanged(ctx context.Context, rt *domain.Rental, from, to domain.RentalStatus) error {
	args := m.Called(ctx, rt, from, to)
	return args.Error(0)
}

func (m *MockNotifier) PaymentProofSubmitted(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockNotifier) PaymentVerified(ctx context.Context, rt *domain.Rental, approved bool) error {
	args := m.Called(ctx, rt, approved)
	return args.Error(0)
}
