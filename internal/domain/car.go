package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
	CarStatusHidden      CarStatus = "HIDDEN"
	CarStatusDeleted     CarStatus = "DELETED"
)

// Valid reports whether s is one of the closed set of car statuses.
func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance, CarStatusHidden, CarStatusDeleted:
		return true
	}
	return false
}

// Car is a vehicle a shop offers for time-bounded rental.
//
// Status is a cached projection of the car's rental set. Conflict detection
// never reads it; the rentals table is the source of truth. It is maintained
// transactionally alongside rental status transitions and repaired by the
// reconcile job if it ever drifts.
type Car struct {
	ID                 int32     `json:"id"`
	ShopID             int32     `json:"shop_id"`
	Name               string    `json:"name"`
	Plate              string    `json:"plate"`
	DailyRateCents     int32     `json:"daily_rate_cents"`
	InsuranceRateCents int32     `json:"insurance_rate_cents"`
	Status             CarStatus `json:"status"`
	CreatedOn          time.Time `json:"created_on"`
	UpdatedOn          time.Time `json:"updated_on"`
}
