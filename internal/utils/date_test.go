package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.March, "2024-03-29"},    // Mar 31 2024 is a Sunday
		{2024, time.November, "2024-11-29"}, // Nov 30 2024 is a Saturday
		{2024, time.December, "2024-12-31"}, // ends on a Tuesday
		{2025, time.May, "2025-05-30"},      // May 31 2025 is a Saturday
		{2025, time.June, "2025-06-30"},     // ends on a Monday
		{2025, time.August, "2025-08-29"},   // Aug 31 2025 is a Sunday
		{2026, time.February, "2026-02-27"}, // Feb 28 2026 is a Saturday
		{2024, time.February, "2024-02-29"}, // leap day, a Thursday
	}
	for _, tt := range tests {
		got := LastWeekdayOfMonth(tt.year, tt.month)
		assert.Equal(t, tt.want, got.Format(DateLayout), "%d-%02d", tt.year, tt.month)
	}
}

func TestIsLastWeekdayOfMonth(t *testing.T) {
	ok, _ := time.Parse(DateLayout, "2024-03-29")
	assert.True(t, IsLastWeekdayOfMonth(ok))

	// The literal month end does not qualify when it falls on a weekend.
	sunday, _ := time.Parse(DateLayout, "2024-03-31")
	assert.False(t, IsLastWeekdayOfMonth(sunday))

	midMonth, _ := time.Parse(DateLayout, "2024-03-15")
	assert.False(t, IsLastWeekdayOfMonth(midMonth))
}
