package events

import "time"

const TimeEntryTopic = "attendance.time_entry.v1"

const (
	TimeEntryClockedIn  = "time_entry_clocked_in"
	TimeEntryClockedOut = "time_entry_clocked_out"
	TimeEntryUpdated    = "time_entry_updated"
	TimeEntryDeleted    = "time_entry_deleted"
)

type TimeEntryEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EntryID    string    `json:"entry_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
