package domain

import "time"

// ScheduleStatus enumerates shift states. Transitions are free-form:
// any status may be set on create or update.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleStatusScheduled, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}

// ScheduleEntry is a single shift assigned to a staff account.
// Date and times are stored as the client supplies them
// (YYYY-MM-DD / HH:MM), which keeps the (date, start_time) ordering
// lexicographic.
type ScheduleEntry struct {
	ID          int64
	StaffID     int64
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Status      ScheduleStatus
	CreatedAt   time.Time

	// Owner display fields, populated by list queries via join.
	StaffName  string
	StaffEmail string
}
