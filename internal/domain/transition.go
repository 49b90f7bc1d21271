package domain

// legalTransitions is the closed rental lifecycle table. COMPLETED and
// CANCELLED are terminal and have no entries.
var legalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:         {RentalStatusConfirmed, RentalStatusCancelled},
	RentalStatusConfirmed:       {RentalStatusOngoing, RentalStatusCancelled},
	RentalStatusOngoing:         {RentalStatusReturnRequested, RentalStatusReturnApproved, RentalStatusCompleted},
	RentalStatusReturnRequested: {RentalStatusReturnApproved},
	RentalStatusReturnApproved:  {RentalStatusCompleted},
}

// CanTransition reports whether from -> to appears in the lifecycle table.
func CanTransition(from, to RentalStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates a requested status change. A transition to the
// current status is an idempotent no-op, reported via noop so callers can
// skip the write. Anything outside the table fails with
// InvalidTransitionError naming both ends.
func Transition(from, to RentalStatus) (noop bool, err error) {
	if !to.Valid() {
		return false, &InvalidTransitionError{From: from, To: to}
	}
	if from == to {
		return true, nil
	}
	if !CanTransition(from, to) {
		return false, &InvalidTransitionError{From: from, To: to}
	}
	return false, nil
}

// AuthorizeTransition enforces the per-role rules on top of the table.
// Confirming, handing over, approving returns and completing are shop
// decisions. Cancelling is open to the customer only while the rental is
// unpaid; requesting a return requires it to be paid. Shops may also cancel
// before handover. The system actor (scheduled jobs) is exempt from role
// gates but still bound by the table.
func AuthorizeTransition(role ActorRole, from, to RentalStatus, payment PaymentStatus) error {
	if role == RoleSystem {
		return nil
	}
	switch role {
	case RoleShop:
		switch {
		case from == RentalStatusPending && (to == RentalStatusConfirmed || to == RentalStatusCancelled):
			return nil
		case from == RentalStatusConfirmed && (to == RentalStatusOngoing || to == RentalStatusCancelled):
			return nil
		case from == RentalStatusOngoing && (to == RentalStatusReturnApproved || to == RentalStatusCompleted):
			return nil
		case from == RentalStatusReturnRequested && to == RentalStatusReturnApproved:
			return nil
		case from == RentalStatusReturnApproved && to == RentalStatusCompleted:
			return nil
		}
	case RoleCustomer:
		switch {
		case to == RentalStatusCancelled && (from == RentalStatusPending || from == RentalStatusConfirmed):
			if payment == PaymentStatusPaid {
				return ErrForbidden
			}
			return nil
		case to == RentalStatusReturnRequested && from == RentalStatusOngoing:
			if payment != PaymentStatusPaid {
				return ErrForbidden
			}
			return nil
		}
	}
	return ErrForbidden
}
