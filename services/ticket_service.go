package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
)

// TicketService owns the ticket ownership ledger. Transfers swap the owner
// and append to the immutable history trail in one transaction, so no reader
// ever observes a ticket between owners.
type TicketService struct {
	app      *pocketbase.PocketBase
	notifier *Notifier
}

func NewTicketService(app *pocketbase.PocketBase, notifier *Notifier) *TicketService {
	return &TicketService{
		app:      app,
		notifier: notifier,
	}
}

// Transfer moves a ticket from one owner to another. Preconditions: the
// ticket is active and currently owned by fromUserID; replaying a finished
// transfer therefore fails with a conflict instead of silently succeeding.
func (s *TicketService) Transfer(ctx context.Context, ticketID, fromUserID, toUserID, reason string) (models.Ticket, error) {
	record, err := s.app.FindRecordById("tickets", ticketID)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: %w", ticketID, status.ErrNotFound)
	}

	ticket, history, err := models.ApplyTransfer(recordToTicket(record), fromUserID, toUserID, reason, time.Now())
	if err != nil {
		monitoring.TrackTransfer("rejected")
		return models.Ticket{}, err
	}

	// Refuse transfers to unknown accounts before writing anything.
	if _, err := s.app.FindRecordById("users", toUserID); err != nil {
		return models.Ticket{}, fmt.Errorf("transfer target %s: %w", toUserID, status.ErrNotFound)
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		record.Set("owner_id", ticket.OwnerID)
		record.Set("transferred_at", *ticket.TransferredAt)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save ticket: %w", err)
		}

		collection, err := txApp.FindCollectionByNameOrId("ticket_transfer_history")
		if err != nil {
			return err
		}
		row := core.NewRecord(collection)
		row.Set("ticket_id", history.TicketID)
		row.Set("from_user_id", history.FromUserID)
		row.Set("to_user_id", history.ToUserID)
		row.Set("reason", history.Reason)
		row.Set("transferred_at", history.TransferredAt)
		if err := txApp.Save(row); err != nil {
			return fmt.Errorf("append transfer history: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}

	monitoring.TrackTransfer("ok")
	s.notifier.NotifyUser(toUserID, map[string]any{
		"type":      "ticket_received",
		"ticket_id": ticketID,
		"from_user": fromUserID,
	})
	s.notifier.NotifyUser(fromUserID, map[string]any{
		"type":      "ticket_transferred",
		"ticket_id": ticketID,
		"to_user":   toUserID,
	})

	return recordToTicket(record), nil
}

// History returns the append-only transfer trail of a ticket, oldest first.
func (s *TicketService) History(ctx context.Context, ticketID string) ([]models.TicketTransferHistory, error) {
	records, err := s.app.FindRecordsByFilter(
		"ticket_transfer_history",
		"ticket_id = {:ticketId}",
		"transferred_at",
		100,
		0,
		map[string]any{"ticketId": ticketID},
	)
	if err != nil {
		return nil, fmt.Errorf("transfer history of %s: %w", ticketID, err)
	}

	history := make([]models.TicketTransferHistory, 0, len(records))
	for _, record := range records {
		history = append(history, recordToHistory(record))
	}
	return history, nil
}

// ListByOwner returns the tickets a user currently owns, newest first.
func (s *TicketService) ListByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	records, err := s.app.FindRecordsByFilter(
		"tickets",
		"owner_id = {:ownerId}",
		"-created",
		100,
		0,
		map[string]any{"ownerId": ownerID},
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets of %s: %w", ownerID, err)
	}

	tickets := make([]models.Ticket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, recordToTicket(record))
	}
	return tickets, nil
}

// GetTicket loads one ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	record, err := s.app.FindRecordById("tickets", ticketID)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: %w", ticketID, status.ErrNotFound)
	}
	return recordToTicket(record), nil
}
