package models

import "time"

// EventState represents the lifecycle state of an event
type EventState string

const (
	EventStateUpcoming  EventState = "upcoming"
	EventStateActive    EventState = "active"
	EventStateCompleted EventState = "completed"
	EventStateCancelled EventState = "cancelled"
)

// Event represents a time-bounded venue session during which bidding is permitted
type Event struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	State     EventState `db:"state"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// IsActive returns whether bidding is currently permitted
func (e *Event) IsActive() bool {
	return e.State == EventStateActive
}

// CanTransitionTo validates a lifecycle transition
func (e *Event) CanTransitionTo(target EventState) bool {
	switch e.State {
	case EventStateUpcoming:
		return target == EventStateActive || target == EventStateCancelled
	case EventStateActive:
		return target == EventStateCompleted || target == EventStateCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}
