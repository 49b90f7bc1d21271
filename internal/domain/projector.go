package domain

// ProjectCarStatus maps a rental status transition target to the owning
// car's availability flag. Applied in the same transaction as the rental
// update. PENDING and RETURN_REQUESTED leave the car untouched: an
// unconfirmed request does not occupy the car in the UI sense, and a
// requested return is not yet a returned car.
//
// The direct flip on release is safe because active rentals on one car never
// overlap, so at most one rental holds the car at a time.
func ProjectCarStatus(target RentalStatus) (CarStatus, bool) {
	switch target {
	case RentalStatusConfirmed, RentalStatusOngoing:
		return CarStatusRented, true
	case RentalStatusReturnApproved, RentalStatusCompleted, RentalStatusCancelled:
		return CarStatusAvailable, true
	}
	return "", false
}
