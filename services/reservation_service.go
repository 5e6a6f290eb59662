package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
)

// ReservationService drives the reservation lifecycle:
// pending -> confirmed -> voided. Confirmation issues tickets and books the
// purchase transaction in the same database transaction.
type ReservationService struct {
	app      *pocketbase.PocketBase
	events   *EventService
	notifier *Notifier
}

func NewReservationService(app *pocketbase.PocketBase, events *EventService, notifier *Notifier) *ReservationService {
	return &ReservationService{
		app:      app,
		events:   events,
		notifier: notifier,
	}
}

// Create books a pending reservation. The capacity check is advisory: it
// reads the cached reserved-seat counter without locking, so two concurrent
// bookings can both pass it. Overbooking shows up in the admin confirmation
// queue instead.
func (s *ReservationService) Create(ctx context.Context, userID, eventID string, quantity int, ticketHolder string) (models.Reservation, error) {
	if ticketHolder == "" {
		return models.Reservation{}, fmt.Errorf("ticket holder is required: %w", status.ErrValidation)
	}

	eventRecord, err := s.app.FindRecordById("events", eventID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("event %s: %w", eventID, status.ErrNotFound)
	}
	event := recordToEvent(eventRecord)

	reserved, err := s.events.ReservedSeats(ctx, eventID)
	if err != nil {
		return models.Reservation{}, err
	}
	if err := models.ValidateBooking(event, reserved, quantity, time.Now()); err != nil {
		monitoring.TrackReservation("create", "rejected")
		return models.Reservation{}, err
	}

	collection, err := s.app.FindCollectionByNameOrId("reservations")
	if err != nil {
		return models.Reservation{}, err
	}

	record := core.NewRecord(collection)
	record.Set("user_id", userID)
	record.Set("event_id", eventID)
	record.Set("quantity", quantity)
	record.Set("ticket_holder", ticketHolder)
	record.Set("status", models.ReservationStatusPending)

	if err := s.app.Save(record); err != nil {
		return models.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}

	s.events.InvalidateCapacity(ctx, eventID)
	monitoring.TrackReservation("create", "ok")

	return recordToReservation(record), nil
}

// Confirm moves a pending reservation to confirmed, issues its tickets and
// records the purchase transaction. All writes share one transaction.
func (s *ReservationService) Confirm(ctx context.Context, reservationID string) (models.Reservation, error) {
	record, err := s.app.FindRecordById("reservations", reservationID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", reservationID, status.ErrNotFound)
	}
	reservation := recordToReservation(record)

	if !models.CanTransitionReservation(reservation.Status, models.ReservationStatusConfirmed) {
		return models.Reservation{}, fmt.Errorf("reservation %s is %s, cannot confirm: %w",
			reservationID, reservation.Status, status.ErrConflict)
	}

	eventRecord, err := s.app.FindRecordById("events", reservation.EventID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("event %s: %w", reservation.EventID, status.ErrNotFound)
	}
	event := recordToEvent(eventRecord)

	err = s.app.RunInTransaction(func(txApp core.App) error {
		record.Set("status", models.ReservationStatusConfirmed)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}

		tickets, err := txApp.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}
		for i := 0; i < reservation.Quantity; i++ {
			ticket := core.NewRecord(tickets)
			ticket.Set("reservation_id", reservation.ID)
			ticket.Set("event_id", reservation.EventID)
			ticket.Set("owner_id", reservation.UserID)
			ticket.Set("price", event.Price)
			ticket.Set("status", models.TicketStatusActive)
			if err := txApp.Save(ticket); err != nil {
				return fmt.Errorf("issue ticket %d: %w", i, err)
			}
		}

		amount := decimal.NewFromFloat(event.Price).Mul(decimal.NewFromInt(int64(reservation.Quantity))).Round(2)
		return saveTransaction(txApp, reservation.ID, reservation.UserID, models.TransactionTypePurchase, amount, "")
	})
	if err != nil {
		return models.Reservation{}, err
	}

	monitoring.TrackReservation("confirm", "ok")
	s.notifier.NotifyUser(reservation.UserID, map[string]any{
		"type":           "reservation_confirmed",
		"reservation_id": reservation.ID,
		"event_id":       reservation.EventID,
		"quantity":       reservation.Quantity,
	})

	return recordToReservation(record), nil
}

// Void terminates a reservation. Still-active tickets of the reservation are
// cancelled in the same transaction; voided is immutable afterwards.
func (s *ReservationService) Void(ctx context.Context, reservationID string) (models.Reservation, error) {
	record, err := s.app.FindRecordById("reservations", reservationID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", reservationID, status.ErrNotFound)
	}
	reservation := recordToReservation(record)

	if !models.CanTransitionReservation(reservation.Status, models.ReservationStatusVoided) {
		return models.Reservation{}, fmt.Errorf("reservation %s is %s, cannot void: %w",
			reservationID, reservation.Status, status.ErrConflict)
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		record.Set("status", models.ReservationStatusVoided)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}

		tickets, err := findGroupTickets(txApp, reservation.ID, "", models.TicketStatusActive)
		if err != nil {
			return err
		}
		return transitionGroupRecords(txApp, tickets, models.TicketStatusCancelled)
	})
	if err != nil {
		return models.Reservation{}, err
	}

	s.events.InvalidateCapacity(ctx, reservation.EventID)
	monitoring.TrackReservation("void", "ok")

	return recordToReservation(record), nil
}

// ListByUser returns the user's reservations, newest first.
func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	records, err := s.app.FindRecordsByFilter(
		"reservations",
		"user_id = {:userId}",
		"-created",
		50,
		0,
		map[string]any{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	reservations := make([]models.Reservation, 0, len(records))
	for _, record := range records {
		reservations = append(reservations, recordToReservation(record))
	}
	return reservations, nil
}
