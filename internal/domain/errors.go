package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrCarUnavailable = errors.New("car is not available for booking")
	ErrAlreadyPaid    = errors.New("payment has already been verified")
	// ErrNoPendingVerification is returned when a shop tries to verify a
	// rental whose payment is not awaiting verification.
	ErrNoPendingVerification = errors.New("no payment pending verification")
	// ErrConflict signals that a concurrent transition won the race on the
	// same record. The whole operation is safe to retry.
	ErrConflict = errors.New("conflicting concurrent update, retry")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BookingConflictError reports that a candidate date range overlaps an
// existing non-released rental on the same car. The conflicting interval is
// included so the caller can pick different dates.
type BookingConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("dates conflict with an existing rental from %s to %s",
		e.Start.Format(DateLayout), e.End.Format(DateLayout))
}

// InvalidTransitionError reports a rental status transition outside the
// legal table. Always a client logic error, never retried.
type InvalidTransitionError struct {
	From RentalStatus
	To   RentalStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition rental from %s to %s", e.From, e.To)
}

// PricingError reports a non-positive or otherwise unusable total amount.
type PricingError struct {
	AmountCents int64
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("computed total amount %d cents is not payable", e.AmountCents)
}
