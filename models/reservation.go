package models

import (
	"fmt"
	"time"

	"ticket-booking/internal/status"
)

type Reservation struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      string    `json:"event_id"`
	Quantity     int       `json:"quantity"`
	TicketHolder string    `json:"ticket_holder"`
	Status       string    `json:"status"` // pending, confirmed, voided
	CreatedAt    time.Time `json:"created_at"`
}

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusVoided    = "voided"
)

// reservationTransitions defines the valid reservation status transitions.
// Voided is terminal.
var reservationTransitions = map[string][]string{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusVoided},
	ReservationStatusConfirmed: {ReservationStatusVoided},
	ReservationStatusVoided:    {},
}

func CanTransitionReservation(from, to string) bool {
	return canTransition(reservationTransitions, from, to)
}

// ValidateBooking gates a new reservation before anything is written. The
// capacity comparison uses the advisory reserved-seat counter, so two
// concurrent bookings can still both pass; a request that fails here has
// produced no writes at all.
func ValidateBooking(e Event, reservedSeats, quantity int, now time.Time) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", status.ErrValidation)
	}
	if !now.Before(e.Date) {
		return fmt.Errorf("event %s already started: %w", e.ID, status.ErrValidation)
	}
	if quantity > RemainingCapacity(e, reservedSeats) {
		return fmt.Errorf("quantity %d exceeds remaining capacity %d: %w",
			quantity, RemainingCapacity(e, reservedSeats), status.ErrValidation)
	}
	return nil
}
