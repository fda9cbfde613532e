package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the change notifications pushed to clients.
// The names are the wire-level SSE event names.
type EventType string

const (
	EventScheduleCreated EventType = "schedule:created"
	EventScheduleUpdated EventType = "schedule:updated"
	EventScheduleDeleted EventType = "schedule:deleted"
	EventStaffCreated    EventType = "staff:created"
)

// Event is a change notification. The payload is deliberately thin:
// clients re-fetch on receipt, so only the affected id travels.
type Event struct {
	ID        string    `json:"event_id"`
	Type      EventType `json:"type"`
	EntityID  int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent builds an event for the entity.
func NewEvent(eventType EventType, entityID int64) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
