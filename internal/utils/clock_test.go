package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFuturePeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	testCases := []struct {
		name        string
		year, month int
		want        bool
	}{
		{name: "past year", year: 2024, month: 12, want: false},
		{name: "earlier month", year: 2025, month: 1, want: false},
		{name: "current month", year: 2025, month: 3, want: false},
		{name: "next month", year: 2025, month: 4, want: true},
		{name: "next year", year: 2026, month: 1, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsFuturePeriod(tc.year, tc.month, now))
		})
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	var c Clock = FixedClock{T: at}
	assert.True(t, c.Now().Equal(at))
}
