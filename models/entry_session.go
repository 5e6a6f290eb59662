package models

import (
	"fmt"
	"time"

	"ticket-booking/internal/status"
)

// EntrySession is a short-lived check-in token tying one user's tickets for a
// reservation to a gate scan. Used and expired are terminal.
type EntrySession struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	UserID        string     `json:"user_id"`
	ReservationID string     `json:"reservation_id"`
	Code          string     `json:"code"`   // short numeric code shown to gate staff
	Status        string     `json:"status"` // pending, used, expired
	ExpiresAt     time.Time  `json:"expires_at"`
	UsedAt        *time.Time `json:"used_at"`
}

const (
	EntryStatusPending = "pending"
	EntryStatusUsed    = "used"
	EntryStatusExpired = "expired"
)

// Visible reports whether the session should be returned by lookups. Anything
// not pending, or pending but past its expiry, reads as not found even while
// the row still exists.
func (s EntrySession) Visible(now time.Time) bool {
	return s.Status == EntryStatusPending && now.Before(s.ExpiresAt)
}

// MarkUsed transitions the session to used. Expired-but-not-yet-swept rows
// are reported as not found, matching lookup behavior; any non-pending status
// is a conflict.
func (s EntrySession) MarkUsed(now time.Time) (EntrySession, error) {
	if s.Status != EntryStatusPending {
		return s, fmt.Errorf("entry session %s already %s: %w", s.ID, s.Status, status.ErrConflict)
	}
	if !now.Before(s.ExpiresAt) {
		return s, fmt.Errorf("entry session %s expired: %w", s.ID, status.ErrNotFound)
	}
	s.Status = EntryStatusUsed
	s.UsedAt = &now
	return s, nil
}
