package models

import (
	"fmt"
	"time"

	"ticket-booking/internal/status"
)

type Ticket struct {
	ID            string     `json:"id"`
	ReservationID string     `json:"reservation_id"`
	EventID       string     `json:"event_id"`
	OwnerID       string     `json:"owner_id"`
	Price         float64    `json:"price"`
	Status        string     `json:"status"` // active, cancel_requested, cancelled, used, transferred
	TransferredAt *time.Time `json:"transferred_at"`
}

const (
	TicketStatusActive          = "active"
	TicketStatusCancelRequested = "cancel_requested"
	TicketStatusCancelled       = "cancelled"
	TicketStatusUsed            = "used"

	// TicketStatusTransferred is archival only. Ownership transfers keep the
	// ticket active under the new owner; no workflow in this codebase sets
	// this value, it exists so archived rows from older data stay readable.
	TicketStatusTransferred = "transferred"
)

var ticketTransitions = map[string][]string{
	TicketStatusActive:          {TicketStatusCancelRequested, TicketStatusUsed, TicketStatusCancelled},
	TicketStatusCancelRequested: {TicketStatusCancelled, TicketStatusActive},
	TicketStatusCancelled:       {},
	TicketStatusUsed:            {},
	TicketStatusTransferred:     {},
}

func CanTransitionTicket(from, to string) bool {
	return canTransition(ticketTransitions, from, to)
}

// TransitionTicketGroup moves every ticket of a group to the same status, or
// none of them: one member that cannot make the transition aborts the whole
// group, so a partially cancelled or partially restored group can never be
// written. The input is left untouched.
func TransitionTicketGroup(tickets []Ticket, to string) ([]Ticket, error) {
	out := make([]Ticket, len(tickets))
	for i, t := range tickets {
		if !CanTransitionTicket(t.Status, to) {
			return nil, fmt.Errorf("ticket %s is %s, group cannot move to %s: %w",
				t.ID, t.Status, to, status.ErrConflict)
		}
		t.Status = to
		out[i] = t
	}
	return out, nil
}

// TicketTransferHistory is an append-only audit row. It is never updated or
// deleted once written.
type TicketTransferHistory struct {
	ID            string    `json:"id"`
	TicketID      string    `json:"ticket_id"`
	FromUserID    string    `json:"from_user_id"`
	ToUserID      string    `json:"to_user_id"`
	Reason        string    `json:"reason"`
	TransferredAt time.Time `json:"transferred_at"`
}

// ApplyTransfer validates a transfer against the current ticket state and
// returns the updated ticket plus the history row to append. The ticket stays
// active so the new owner can still cancel it or check in with it.
func ApplyTransfer(t Ticket, fromUserID, toUserID, reason string, now time.Time) (Ticket, TicketTransferHistory, error) {
	if t.Status != TicketStatusActive {
		return t, TicketTransferHistory{}, fmt.Errorf("ticket %s is %s, not transferable: %w", t.ID, t.Status, status.ErrConflict)
	}
	if t.OwnerID != fromUserID {
		return t, TicketTransferHistory{}, fmt.Errorf("ticket %s is not owned by %s: %w", t.ID, fromUserID, status.ErrConflict)
	}
	if toUserID == "" || toUserID == fromUserID {
		return t, TicketTransferHistory{}, fmt.Errorf("invalid transfer target: %w", status.ErrValidation)
	}

	t.OwnerID = toUserID
	t.TransferredAt = &now

	history := TicketTransferHistory{
		TicketID:      t.ID,
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		Reason:        reason,
		TransferredAt: now,
	}
	return t, history, nil
}
