package domain

import "time"

// DateLayout is the wire and storage format for rental dates.
const DateLayout = "2006-01-02"

// DateRange is a closed interval of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two closed intervals share at least one day:
// [s1,e1] and [s2,e2] overlap iff s1 <= e2 && s2 <= e1.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// FindConflict scans existing rentals for one that blocks the candidate
// range. Released rentals (CANCELLED, COMPLETED, RETURN_APPROVED) never
// block; every other status does, including PENDING, so an unconfirmed
// request is not double-offered. Pure predicate over a snapshot.
func FindConflict(candidate DateRange, existing []Rental) (*Rental, bool) {
	for i := range existing {
		rt := &existing[i]
		if rt.Status.Released() {
			continue
		}
		if candidate.Overlaps(DateRange{Start: rt.StartDate, End: rt.EndDate}) {
			return rt, true
		}
	}
	return nil, false
}
