package timeentry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TimeEntry struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_time_entries_user_clock_in,priority:1;index:idx_time_entries_user_clock_out,priority:1"`
	ClockIn           time.Time  `gorm:"column:clock_in;type:timestamptz;not null;index:idx_time_entries_user_clock_in,priority:2"`
	ClockOut          *time.Time `gorm:"column:clock_out;type:timestamptz;index:idx_time_entries_user_clock_out,priority:2"`
	ClockInLatitude   *float64   `gorm:"column:clock_in_latitude"`
	ClockInLongitude  *float64   `gorm:"column:clock_in_longitude"`
	ClockOutLatitude  *float64   `gorm:"column:clock_out_latitude"`
	ClockOutLongitude *float64   `gorm:"column:clock_out_longitude"`
	Notes             *string    `gorm:"column:notes;type:text"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// IsOpen reports whether the entry has no recorded clock-out yet.
func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// DurationMinutes returns the worked minutes, or nil for an open entry.
func (e *TimeEntry) DurationMinutes() *int {
	if e.ClockOut == nil {
		return nil
	}
	minutes := int(e.ClockOut.Sub(e.ClockIn).Minutes())
	return &minutes
}

// FormattedDuration returns the duration as "1h 30m", or nil for an open entry.
func (e *TimeEntry) FormattedDuration() *string {
	minutes := e.DurationMinutes()
	if minutes == nil {
		return nil
	}
	formatted := fmt.Sprintf("%dh %dm", *minutes/60, *minutes%60)
	return &formatted
}

// Overlaps reports whether two closed entries cover overlapping time ranges.
// Intervals are half-open: entries that merely touch do not overlap. Open
// entries never overlap anything since their end is unknown.
func (e *TimeEntry) Overlaps(other *TimeEntry) bool {
	if e.ClockOut == nil || other.ClockOut == nil {
		return false
	}
	return e.ClockIn.Before(*other.ClockOut) && e.ClockOut.After(other.ClockIn)
}
