package domain

import "time"

// RentalDays returns the chargeable day count for a date range:
// ceil((end - start) / 24h). Dates carry day precision, so for well-formed
// ranges this is simply the number of nights between them.
func RentalDays(start, end time.Time) int32 {
	hours := end.Sub(start).Hours()
	days := int32(hours / 24)
	if float64(days*24) < hours {
		days++
	}
	return days
}

// TotalAmountCents prices a rental: days * daily rate plus the insurance
// rate charged once per rental, not per day. A non-positive result is a
// PricingError rather than a free rental.
func TotalAmountCents(start, end time.Time, dailyRateCents, insuranceRateCents int32) (int32, error) {
	days := RentalDays(start, end)
	total := int64(days)*int64(dailyRateCents) + int64(insuranceRateCents)
	if total <= 0 || total > int64(1<<31-1) {
		return 0, &PricingError{AmountCents: total}
	}
	return int32(total), nil
}
