package utils

import "time"

// DateLayout is the calendar date format used across the API and the
// signoffs table.
const DateLayout = "2006-01-02"

// LastWeekdayOfMonth returns the last Monday–Friday day of the given
// month. It starts from the final calendar day and steps backward one
// day at a time while it falls on a weekend.
func LastWeekdayOfMonth(year int, month time.Month) time.Time {
	// Day 0 of the next month is the last day of this one.
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// IsLastWeekdayOfMonth reports whether d is the last weekday of its
// month. Only the calendar date is considered.
func IsLastWeekdayOfMonth(d time.Time) bool {
	last := LastWeekdayOfMonth(d.Year(), d.Month())
	return d.Year() == last.Year() && d.Month() == last.Month() && d.Day() == last.Day()
}
