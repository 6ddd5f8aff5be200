package timeentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func closedEntry(clockIn, clockOut time.Time) *TimeEntry {
	return &TimeEntry{ClockIn: clockIn, ClockOut: &clockOut}
}

func TestTimeEntry_Overlaps(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	t.Run("partial overlap", func(t *testing.T) {
		a := closedEntry(at(9, 0), at(12, 0))
		b := closedEntry(at(11, 0), at(14, 0))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("containment", func(t *testing.T) {
		outer := closedEntry(at(8, 0), at(17, 0))
		inner := closedEntry(at(10, 0), at(11, 0))
		assert.True(t, outer.Overlaps(inner))
		assert.True(t, inner.Overlaps(outer))
	})

	t.Run("adjacent entries do not overlap", func(t *testing.T) {
		a := closedEntry(at(9, 0), at(12, 0))
		b := closedEntry(at(12, 0), at(15, 0))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("disjoint entries do not overlap", func(t *testing.T) {
		a := closedEntry(at(7, 0), at(8, 0))
		b := closedEntry(at(13, 0), at(15, 0))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("open entry never overlaps", func(t *testing.T) {
		open := &TimeEntry{ClockIn: at(9, 0)}
		closed := closedEntry(at(8, 0), at(17, 0))
		assert.False(t, open.Overlaps(closed))
		assert.False(t, closed.Overlaps(open))
	})
}

func TestTimeEntry_Duration(t *testing.T) {
	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("open entry has no duration", func(t *testing.T) {
		e := &TimeEntry{ClockIn: clockIn}
		assert.True(t, e.IsOpen())
		assert.Nil(t, e.DurationMinutes())
		assert.Nil(t, e.FormattedDuration())
	})

	t.Run("closed entry reports minutes and formatted form", func(t *testing.T) {
		e := closedEntry(clockIn, clockIn.Add(90*time.Minute))
		assert.False(t, e.IsOpen())
		if assert.NotNil(t, e.DurationMinutes()) {
			assert.Equal(t, 90, *e.DurationMinutes())
		}
		if assert.NotNil(t, e.FormattedDuration()) {
			assert.Equal(t, "1h 30m", *e.FormattedDuration())
		}
	})

	t.Run("sub hour duration", func(t *testing.T) {
		e := closedEntry(clockIn, clockIn.Add(45*time.Minute))
		assert.Equal(t, "0h 45m", *e.FormattedDuration())
	})
}
