package service

import (
	"context"
	"errors"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	notifier    Notifier
}

func NewPaymentService(paymentRepo repository.PaymentRepository, rentalRepo repository.RentalRepository, notifier Notifier) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		notifier:    notifier,
	}
}

// SubmitProof attaches evidence to the rental's payment and moves it to
// PENDING_VERIFICATION. Resubmission after a rejection is allowed; a payment
// that was already verified is not touched.
func (s *paymentService) SubmitProof(ctx context.Context, customerID, rentalID int32, evidenceRef string) (*domain.Payment, error) {
	if evidenceRef == "" {
		return nil, &domain.ValidationError{Field: "evidence_ref", Reason: "is required"}
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	if rt.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.ErrAlreadyPaid
	}

	p, err := s.paymentRepo.SubmitProof(ctx, rentalID, rt.TotalAmountCents, evidenceRef)
	if err != nil {
		return nil, err
	}

	_ = s.notifier.PaymentProofSubmitted(ctx, rt)
	return p, nil
}

// Verify lands the shop's decision. Approval marks the payment PAID and
// confirms the rental, which flips the car to RENTED. Rejection reverts the
// rental's payment state so the customer can submit fresh proof; the rental
// itself stays PENDING rather than being cancelled.
func (s *paymentService) Verify(ctx context.Context, shopID, rentalID int32, approve bool) (*VerificationResult, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.ShopID != shopID {
		return nil, domain.ErrNotFound
	}

	p, err := s.paymentRepo.GetByRentalID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoPendingVerification
		}
		return nil, err
	}
	if p.Status != domain.PaymentStatusPendingVerification {
		return nil, domain.ErrNoPendingVerification
	}

	update := &repository.VerificationUpdate{
		RentalID:   rentalID,
		RentalFrom: rt.Status,
		CarID:      rt.CarID,
		VerifiedBy: shopID,
		VerifiedAt: time.Now(),
	}
	if approve {
		noop, err := domain.Transition(rt.Status, domain.RentalStatusConfirmed)
		if err != nil {
			return nil, err
		}
		update.PaymentStatus = domain.PaymentStatusPaid
		update.RentalTo = domain.RentalStatusConfirmed
		update.RentalPaymentStatus = domain.PaymentStatusPaid
		if !noop {
			if projected, ok := domain.ProjectCarStatus(domain.RentalStatusConfirmed); ok {
				update.CarStatus = &projected
			}
		}
	} else {
		// Rejection keeps the rental PENDING so the customer can try again.
		update.PaymentStatus = domain.PaymentStatusRejected
		update.RentalTo = rt.Status
		update.RentalPaymentStatus = domain.PaymentStatusRejected
	}

	if err := s.paymentRepo.ApplyVerification(ctx, update); err != nil {
		return nil, err
	}

	_ = s.notifier.PaymentVerified(ctx, rt, approve)
	return &VerificationResult{
		PaymentStatus: update.PaymentStatus,
		RentalStatus:  update.RentalTo,
	}, nil
}
