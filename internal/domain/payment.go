package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending             PaymentStatus = "PENDING"
	PaymentStatusPendingVerification PaymentStatus = "PENDING_VERIFICATION"
	PaymentStatusPaid                PaymentStatus = "PAID"
	PaymentStatusRejected            PaymentStatus = "REJECTED"
	PaymentStatusRefunded            PaymentStatus = "REFUNDED"
	PaymentStatusFailed              PaymentStatus = "FAILED"
)

// Valid reports whether s is one of the closed set of payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPendingVerification, PaymentStatusPaid,
		PaymentStatusRejected, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment tracks the verification workflow for one rental. At most one
// payment row exists per rental; resubmitted proof updates it in place.
// AmountCents always equals the rental's TotalAmountCents.
type Payment struct {
	ID         int32         `json:"id"`
	RentalID   int32         `json:"rental_id"`
	AmountCents int32        `json:"amount_cents"`
	Status     PaymentStatus `json:"status"`
	// ProofRef is an opaque handle into the evidence store.
	ProofRef   string     `json:"proof_ref"`
	VerifiedBy *int32     `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}
