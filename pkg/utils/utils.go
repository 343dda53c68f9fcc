package utils

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used by the disclosure providers.
const DateLayout = "2006-01-02"

// ToPointer returns a pointer to the given value.
func ToPointer[T any](v T) *T {
	return &v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// DaysSince returns the number of whole days between t and now.
func DaysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
