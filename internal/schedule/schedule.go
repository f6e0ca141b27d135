// Package schedule implements the pure calendar arithmetic behind
// recurring transactions and budget period windows.
package schedule

import (
	"time"

	"finflow/internal/models"
	"finflow/internal/types"
)

// Advance returns the next occurrence after d for the given frequency.
//
// Month-based frequencies keep the source day-of-month and clamp it to
// the last valid day of the target month when it does not exist there
// (Jan 31 -> Feb 28/29, May 31 -> Jun 30, Feb 29 -> Feb 28 on a yearly
// advance into a non-leap year). December rolls into January of the
// next year. Unknown frequencies return d unchanged.
func Advance(d types.Date, f models.Frequency) types.Date {
	switch f {
	case models.FrequencyDaily:
		return types.DateOf(d.Time.AddDate(0, 0, 1))
	case models.FrequencyWeekly:
		return types.DateOf(d.Time.AddDate(0, 0, 7))
	case models.FrequencyMonthly:
		return addMonthsClamped(d, 1)
	case models.FrequencyQuarterly:
		return addMonthsClamped(d, 3)
	case models.FrequencyYearly:
		return addMonthsClamped(d, 12)
	default:
		return d
	}
}

// addMonthsClamped advances d by the given number of months, clamping
// the day-of-month to the target month's length. time.AddDate is
// deliberately avoided for the month component because it normalizes
// overflow (Jan 31 + 1 month = Mar 3) instead of clamping.
func addMonthsClamped(d types.Date, months int) types.Date {
	year := d.Year()
	month := int(d.Month()) + months
	for month > 12 {
		month -= 12
		year++
	}

	day := d.Day()
	if last := DaysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return types.NewDate(year, time.Month(month), day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthWindow returns the first and last calendar day of d's month,
// handling the December -> January year rollover for the end date.
func MonthWindow(d types.Date) (types.Date, types.Date) {
	first := types.NewDate(d.Year(), d.Month(), 1)
	last := types.NewDate(d.Year(), d.Month(), DaysInMonth(d.Year(), d.Month()))
	return first, last
}
