package timeentry

import "time"

const (
	DefaultEarliestHour = 6
	DefaultLatestHour   = 23
)

// ClockWindow is the permitted daily window for clock times. EarliestHour is
// an inclusive lower bound; LatestHour is an inclusive ceiling that only
// admits the exact top of the hour, so with the defaults 06:00:00 and
// 23:00:00 are valid but 23:00:01 is not.
type ClockWindow struct {
	EarliestHour int
	LatestHour   int
}

func DefaultClockWindow() ClockWindow {
	return ClockWindow{
		EarliestHour: DefaultEarliestHour,
		LatestHour:   DefaultLatestHour,
	}
}

// Contains reports whether t falls within the permitted window.
func (w ClockWindow) Contains(t time.Time) bool {
	switch {
	case t.Hour() < w.EarliestHour:
		return false
	case t.Hour() > w.LatestHour:
		return false
	case t.Hour() == w.LatestHour && (t.Minute() > 0 || t.Second() > 0):
		return false
	}
	return true
}
