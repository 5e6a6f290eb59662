package services

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticket-booking/models"
)

// findGroupTickets loads the tickets of a (reservation, owner) group in one
// state. An empty ownerID matches every owner in the reservation.
func findGroupTickets(app core.App, reservationID, ownerID, ticketStatus string) ([]*core.Record, error) {
	exp := dbx.HashExp{
		"reservation_id": reservationID,
		"status":         ticketStatus,
	}
	if ownerID != "" {
		exp["owner_id"] = ownerID
	}

	records, err := app.FindAllRecords("tickets", exp)
	if err != nil {
		return nil, fmt.Errorf("find tickets of reservation %s: %w", reservationID, err)
	}
	return records, nil
}

// transitionGroupRecords moves the loaded ticket records to one status, all
// or none. The status change is validated through the domain transition table
// before any record is saved, so a group can never be left half flipped.
func transitionGroupRecords(app core.App, records []*core.Record, to string) error {
	group := make([]models.Ticket, len(records))
	for i, r := range records {
		group[i] = recordToTicket(r)
	}

	updated, err := models.TransitionTicketGroup(group, to)
	if err != nil {
		return err
	}

	for i, r := range records {
		r.Set("status", updated[i].Status)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("save ticket %s: %w", r.Id, err)
		}
	}
	return nil
}

// saveTransaction appends one payment bookkeeping row.
func saveTransaction(app core.App, reservationID, userID, txType string, amount decimal.Decimal, reference string) error {
	collection, err := app.FindCollectionByNameOrId("payment_transactions")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("reservation_id", reservationID)
	record.Set("user_id", userID)
	record.Set("type", txType)
	record.Set("amount", amount.InexactFloat64())
	record.Set("currency", "LAK")
	record.Set("reference", reference)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("save %s transaction for reservation %s: %w", txType, reservationID, err)
	}
	return nil
}

// sumTicketPrices totals a ticket group's prices with decimal math.
func sumTicketPrices(tickets []*core.Record) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tickets {
		total = total.Add(decimal.NewFromFloat(t.GetFloat("price")))
	}
	return total
}
