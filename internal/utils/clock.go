package utils

import "time"

// Clock supplies the current time. Date rules read it instead of time.Now so
// tests can pin "today".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// IsFuturePeriod reports whether (year, month) lies strictly after the calendar month containing now.
func IsFuturePeriod(year, month int, now time.Time) bool {
	currentYear, currentMonth := now.Year(), int(now.Month())
	return year > currentYear || (year == currentYear && month > currentMonth)
}
