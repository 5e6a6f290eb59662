package models

import (
	"time"
)

type Event struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	SeatCapacity   int       `json:"seat_capacity"`
	Price          float64   `json:"price"`
	Status         string    `json:"status"`          // upcoming, ongoing, soldout, completed
	StatusOverride string    `json:"status_override"` // empty unless an admin pinned the status
}

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusSoldout   = "soldout"
	EventStatusCompleted = "completed"
)

// DeriveEventStatus computes the event status from capacity usage and the
// clock. An admin override always wins.
func DeriveEventStatus(e Event, reservedSeats int, now time.Time) string {
	if e.StatusOverride != "" {
		return e.StatusOverride
	}
	if now.After(e.Date.Add(24 * time.Hour)) {
		return EventStatusCompleted
	}
	if !now.Before(e.Date) {
		return EventStatusOngoing
	}
	if reservedSeats >= e.SeatCapacity {
		return EventStatusSoldout
	}
	return EventStatusUpcoming
}

// RemainingCapacity is the advisory seat counter. It can go stale or negative
// under concurrent booking; callers treat it as a hint, not a guarantee.
func RemainingCapacity(e Event, reservedSeats int) int {
	return e.SeatCapacity - reservedSeats
}
