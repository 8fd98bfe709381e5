package model

import "time"

// EventStatus is the booking lifecycle state of an event.
type EventStatus string

const (
	EventPlanned   EventStatus = "planned"
	EventBooked    EventStatus = "booked"
	EventCompleted EventStatus = "completed"
	EventCanceled  EventStatus = "canceled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPlanned, EventBooked, EventCompleted, EventCanceled:
		return true
	}
	return false
}

// Event is a client booking at a venue on a specific day. IDs are random
// UUIDs rather than sequential integers.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ClientID    int64       `json:"client_id"`
	EventDate   time.Time   `json:"event_date"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Venue       string      `json:"venue"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsUpcoming reports whether the event day is after today.
func (e Event) IsUpcoming(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return e.EventDate.After(today)
}
