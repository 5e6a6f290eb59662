package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
	"ticket-booking/utils"
)

// EntryService is the check-in gate. Sessions live for a short window
// (default 1h); using one marks every active ticket the holder has on that
// reservation as used, inside the same transaction as the session update.
type EntryService struct {
	app      *pocketbase.PocketBase
	notifier *Notifier
	ttl      time.Duration
}

func NewEntryService(app *pocketbase.PocketBase, notifier *Notifier, sessionTTL time.Duration) *EntryService {
	return &EntryService{
		app:      app,
		notifier: notifier,
		ttl:      sessionTTL,
	}
}

// Create opens a pending entry session for the user's tickets on a
// reservation. The user must actually hold at least one active ticket there.
func (s *EntryService) Create(ctx context.Context, eventID, userID, reservationID string) (models.EntrySession, error) {
	tickets, err := findGroupTickets(s.app, reservationID, userID, models.TicketStatusActive)
	if err != nil {
		return models.EntrySession{}, err
	}
	if len(tickets) == 0 {
		return models.EntrySession{}, fmt.Errorf("no active tickets for reservation %s owner %s: %w",
			reservationID, userID, status.ErrNotFound)
	}

	collection, err := s.app.FindCollectionByNameOrId("entry_sessions")
	if err != nil {
		return models.EntrySession{}, err
	}

	// Short code gate staff can read back to the visitor.
	code, err := utils.GenerateOTP(6)
	if err != nil {
		return models.EntrySession{}, err
	}

	record := core.NewRecord(collection)
	record.Set("event_id", eventID)
	record.Set("user_id", userID)
	record.Set("reservation_id", reservationID)
	record.Set("code", code)
	record.Set("status", models.EntryStatusPending)
	record.Set("expires_at", time.Now().Add(s.ttl).UTC())

	if err := s.app.Save(record); err != nil {
		return models.EntrySession{}, fmt.Errorf("save entry session: %w", err)
	}

	monitoring.TrackEntrySession("created")
	return recordToEntrySession(record), nil
}

// Get returns the session only while it is pending and unexpired. A row that
// exists but is used, expired, or past its deadline reads as not found.
func (s *EntryService) Get(ctx context.Context, sessionID string) (models.EntrySession, error) {
	record, err := s.app.FindRecordById("entry_sessions", sessionID)
	if err != nil {
		return models.EntrySession{}, fmt.Errorf("entry session %s: %w", sessionID, status.ErrNotFound)
	}

	session := recordToEntrySession(record)
	if !session.Visible(time.Now()) {
		return models.EntrySession{}, fmt.Errorf("entry session %s: %w", sessionID, status.ErrNotFound)
	}
	return session, nil
}

// MarkUsed consumes a session at the gate and cascades the holder's active
// tickets on that reservation to used. Session update and ticket cascade
// share one transaction so a crash cannot leave a consumed session with
// unconsumed tickets.
func (s *EntryService) MarkUsed(ctx context.Context, sessionID string) (models.EntrySession, error) {
	record, err := s.app.FindRecordById("entry_sessions", sessionID)
	if err != nil {
		return models.EntrySession{}, fmt.Errorf("entry session %s: %w", sessionID, status.ErrNotFound)
	}

	session, err := recordToEntrySession(record).MarkUsed(time.Now())
	if err != nil {
		monitoring.TrackEntrySession("rejected")
		return models.EntrySession{}, err
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		record.Set("status", session.Status)
		record.Set("used_at", *session.UsedAt)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save entry session: %w", err)
		}

		tickets, err := txApp.FindAllRecords("tickets", dbx.HashExp{
			"reservation_id": session.ReservationID,
			"event_id":       session.EventID,
			"owner_id":       session.UserID,
			"status":         models.TicketStatusActive,
		})
		if err != nil {
			return fmt.Errorf("find gate tickets: %w", err)
		}
		return transitionGroupRecords(txApp, tickets, models.TicketStatusUsed)
	})
	if err != nil {
		return models.EntrySession{}, err
	}

	monitoring.TrackEntrySession("used")
	s.notifier.NotifyUser(session.UserID, map[string]any{
		"type":           "entry_used",
		"session_id":     session.ID,
		"reservation_id": session.ReservationID,
	})

	return recordToEntrySession(record), nil
}

// CleanupExpired flips overdue pending sessions to expired in one batch
// statement, the counterpart of the platform's update_expired_sessions
// procedure. Runs on a ticker from the bootstrap.
func (s *EntryService) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := s.app.DB().
		NewQuery("UPDATE entry_sessions SET status = {:expired} WHERE status = {:pending} AND expires_at <= {:now}").
		Bind(dbx.Params{
			"expired": models.EntryStatusExpired,
			"pending": models.EntryStatusPending,
			"now":     time.Now().UTC().Format(types.DefaultDateLayout),
		}).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("cleanup expired sessions: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected > 0 {
		monitoring.TrackExpiredSessions(affected)
	}
	return affected, nil
}
