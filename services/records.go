package services

import (
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/models"
)

// Record conversion between PocketBase rows and domain structs lives here so
// column names appear in exactly one place per entity.

func recordToEvent(r *core.Record) models.Event {
	return models.Event{
		ID:             r.Id,
		Name:           r.GetString("name"),
		Description:    r.GetString("description"),
		Location:       r.GetString("location"),
		Date:           r.GetDateTime("date").Time(),
		SeatCapacity:   r.GetInt("seat_capacity"),
		Price:          r.GetFloat("price"),
		Status:         r.GetString("status"),
		StatusOverride: r.GetString("status_override"),
	}
}

func recordToReservation(r *core.Record) models.Reservation {
	return models.Reservation{
		ID:           r.Id,
		UserID:       r.GetString("user_id"),
		EventID:      r.GetString("event_id"),
		Quantity:     r.GetInt("quantity"),
		TicketHolder: r.GetString("ticket_holder"),
		Status:       r.GetString("status"),
		CreatedAt:    r.GetDateTime("created").Time(),
	}
}

func recordToTicket(r *core.Record) models.Ticket {
	t := models.Ticket{
		ID:            r.Id,
		ReservationID: r.GetString("reservation_id"),
		EventID:       r.GetString("event_id"),
		OwnerID:       r.GetString("owner_id"),
		Price:         r.GetFloat("price"),
		Status:        r.GetString("status"),
	}
	if dt := r.GetDateTime("transferred_at"); !dt.IsZero() {
		ts := dt.Time()
		t.TransferredAt = &ts
	}
	return t
}

func recordToHistory(r *core.Record) models.TicketTransferHistory {
	return models.TicketTransferHistory{
		ID:            r.Id,
		TicketID:      r.GetString("ticket_id"),
		FromUserID:    r.GetString("from_user_id"),
		ToUserID:      r.GetString("to_user_id"),
		Reason:        r.GetString("reason"),
		TransferredAt: r.GetDateTime("transferred_at").Time(),
	}
}

func recordToEntrySession(r *core.Record) models.EntrySession {
	s := models.EntrySession{
		ID:            r.Id,
		EventID:       r.GetString("event_id"),
		UserID:        r.GetString("user_id"),
		ReservationID: r.GetString("reservation_id"),
		Code:          r.GetString("code"),
		Status:        r.GetString("status"),
		ExpiresAt:     r.GetDateTime("expires_at").Time(),
	}
	if dt := r.GetDateTime("used_at"); !dt.IsZero() {
		ts := dt.Time()
		s.UsedAt = &ts
	}
	return s
}

func recordToRefundRequest(r *core.Record) models.RefundRequest {
	return models.RefundRequest{
		ID:            r.Id,
		ReservationID: r.GetString("reservation_id"),
		EventID:       r.GetString("event_id"),
		OwnerID:       r.GetString("owner_id"),
		AccountBank:   r.GetString("account_bank"),
		AccountNumber: r.GetString("account_number"),
		AccountHolder: r.GetString("account_holder"),
		Status:        r.GetString("status"),
		RefundPercent: r.GetInt("refund_percent"),
		CreatedAt:     r.GetDateTime("created").Time(),
	}
}
