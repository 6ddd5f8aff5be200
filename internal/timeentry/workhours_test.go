package timeentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockWindow_Contains(t *testing.T) {
	window := DefaultClockWindow()
	at := func(h, m, s int) time.Time {
		return time.Date(2026, 3, 10, h, m, s, 0, time.UTC)
	}

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"earliest boundary is valid", at(6, 0, 0), true},
		{"one second before earliest is invalid", at(5, 59, 59), false},
		{"midday is valid", at(12, 30, 0), true},
		{"latest boundary is valid", at(23, 0, 0), true},
		{"one second past latest is invalid", at(23, 0, 1), false},
		{"one minute past latest is invalid", at(23, 1, 0), false},
		{"midnight is invalid", at(0, 0, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, window.Contains(tc.t))
		})
	}
}

func TestClockWindow_ContainsCustomWindow(t *testing.T) {
	window := ClockWindow{EarliestHour: 8, LatestHour: 18}

	assert.False(t, window.Contains(time.Date(2026, 3, 10, 7, 59, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2026, 3, 10, 18, 0, 30, 0, time.UTC)))
}
