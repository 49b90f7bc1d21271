package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type lifecycleService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	notifier   Notifier
}

func NewLifecycleService(rentalRepo repository.RentalRepository, carRepo repository.CarRepository, notifier Notifier) LifecycleService {
	return &lifecycleService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		notifier:   notifier,
	}
}

// Transition authorizes and applies one rental status change together with
// its car status projection. A request for the current status succeeds
// without writing anything, so retried requests are harmless.
func (s *lifecycleService) Transition(ctx context.Context, actor domain.Actor, rentalID int32, target domain.RentalStatus) (*TransitionResult, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(rt) {
		return nil, domain.ErrNotFound
	}

	car, err := s.carRepo.GetByID(ctx, rt.CarID)
	if err != nil {
		return nil, err
	}

	noop, err := domain.Transition(rt.Status, target)
	if err != nil {
		return nil, err
	}
	if noop {
		return &TransitionResult{RentalStatus: rt.Status, CarStatus: car.Status}, nil
	}

	if err := domain.AuthorizeTransition(actor.Role, rt.Status, target, rt.PaymentStatus); err != nil {
		return nil, err
	}

	update := &repository.TransitionUpdate{
		RentalID: rentalID,
		From:     rt.Status,
		To:       target,
		CarID:    rt.CarID,
	}
	resultCar := car.Status
	if projected, ok := domain.ProjectCarStatus(target); ok {
		update.CarStatus = &projected
		resultCar = projected
	}
	if err := s.rentalRepo.ApplyTransition(ctx, update); err != nil {
		return nil, err
	}

	_ = s.notifier.RentalStatusChanged(ctx, rt, rt.Status, target)
	return &TransitionResult{RentalStatus: target, CarStatus: resultCar}, nil
}
