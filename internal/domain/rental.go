package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending         RentalStatus = "PENDING"
	RentalStatusConfirmed       RentalStatus = "CONFIRMED"
	RentalStatusOngoing         RentalStatus = "ONGOING"
	RentalStatusReturnRequested RentalStatus = "RETURN_REQUESTED"
	RentalStatusReturnApproved  RentalStatus = "RETURN_APPROVED"
	RentalStatusCompleted       RentalStatus = "COMPLETED"
	RentalStatusCancelled       RentalStatus = "CANCELLED"
)

// Valid reports whether s is one of the closed set of rental statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusConfirmed, RentalStatusOngoing,
		RentalStatusReturnRequested, RentalStatusReturnApproved,
		RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is legal from s.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// Released reports whether a rental in status s no longer occupies the car.
// RETURN_APPROVED counts as released even though it precedes COMPLETED: the
// car has physically been returned at that point, so the slot is free to
// book again.
func (s RentalStatus) Released() bool {
	return s == RentalStatusCancelled || s == RentalStatusCompleted || s == RentalStatusReturnApproved
}

// Rental is a customer's claim on a car for a date range.
//
// ShopID and InsuranceRateCents are snapshots taken from the car at creation
// time and immutable thereafter; later changes to the car do not affect
// existing rentals. Rentals are never deleted; terminal statuses are kept
// for history and excluded from conflict checks via Released.
type Rental struct {
	ID         int32 `json:"id"`
	CarID      int32 `json:"car_id"`
	CustomerID int32 `json:"customer_id"`
	ShopID     int32 `json:"shop_id"`
	// StartDate and EndDate carry date precision only; EndDate is
	// strictly after StartDate.
	StartDate          time.Time     `json:"start_date"`
	EndDate            time.Time     `json:"end_date"`
	Status             RentalStatus  `json:"status"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	TotalAmountCents   int32         `json:"total_amount_cents"`
	InsuranceRateCents int32         `json:"insurance_rate_cents"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}
