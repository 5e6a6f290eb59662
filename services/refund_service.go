package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"ticket-booking/internal/services/payout"
	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
	"ticket-booking/utils"
)

// RefundAccount is where an approved refund gets paid out.
type RefundAccount struct {
	Bank   string `json:"bank"`
	Number string `json:"number"`
	Holder string `json:"holder"`
}

// RefundService runs the cancellation workflow. Cancellation is granted per
// ticket group (reservation + current owner), never partially: either every
// active ticket of the group moves to cancel_requested or none does.
type RefundService struct {
	app      *pocketbase.PocketBase
	gateway  payout.Gateway
	notifier *Notifier
	policy   models.RefundPolicy
}

func NewRefundService(app *pocketbase.PocketBase, gateway payout.Gateway, notifier *Notifier) *RefundService {
	return &RefundService{
		app:      app,
		gateway:  gateway,
		notifier: notifier,
		policy:   models.DefaultRefundPolicy,
	}
}

// Quote returns the refund percentage a cancellation would get right now.
func (s *RefundService) Quote(eventDate time.Time) int {
	return models.RefundRate(eventDate, time.Now(), s.policy)
}

// RequestCancellation flips every active ticket of the (reservation, owner)
// group to cancel_requested and records the refund-account mapping, all in
// one transaction. An empty group is NotFound; a second request for the same
// group finds no active tickets and also fails, so the workflow can only be
// started once per group.
func (s *RefundService) RequestCancellation(ctx context.Context, reservationID, ownerID string, account RefundAccount) (models.RefundRequest, error) {
	if account.Bank == "" || account.Number == "" || account.Holder == "" {
		return models.RefundRequest{}, fmt.Errorf("refund account is incomplete: %w", status.ErrValidation)
	}

	reservationRecord, err := s.app.FindRecordById("reservations", reservationID)
	if err != nil {
		return models.RefundRequest{}, fmt.Errorf("reservation %s: %w", reservationID, status.ErrNotFound)
	}
	reservation := recordToReservation(reservationRecord)

	eventRecord, err := s.app.FindRecordById("events", reservation.EventID)
	if err != nil {
		return models.RefundRequest{}, fmt.Errorf("event %s: %w", reservation.EventID, status.ErrNotFound)
	}
	event := recordToEvent(eventRecord)

	percent := models.RefundRate(event.Date, time.Now(), s.policy)

	var request *core.Record
	err = s.app.RunInTransaction(func(txApp core.App) error {
		tickets, err := findGroupTickets(txApp, reservationID, ownerID, models.TicketStatusActive)
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			return fmt.Errorf("no active tickets for reservation %s owner %s: %w",
				reservationID, ownerID, status.ErrNotFound)
		}

		if err := transitionGroupRecords(txApp, tickets, models.TicketStatusCancelRequested); err != nil {
			return err
		}

		collection, err := txApp.FindCollectionByNameOrId("refund_request_mapping")
		if err != nil {
			return err
		}
		request = core.NewRecord(collection)
		request.Set("reservation_id", reservationID)
		request.Set("event_id", reservation.EventID)
		request.Set("owner_id", ownerID)
		request.Set("account_bank", account.Bank)
		request.Set("account_number", account.Number)
		request.Set("account_holder", account.Holder)
		request.Set("status", models.RefundStatusRequested)
		request.Set("refund_percent", percent)
		if err := txApp.Save(request); err != nil {
			return fmt.Errorf("save refund request: %w", err)
		}
		return nil
	})
	if err != nil {
		monitoring.TrackCancellation("request", "failed")
		return models.RefundRequest{}, err
	}

	monitoring.TrackCancellation("request", "ok")
	return recordToRefundRequest(request), nil
}

// Approve finishes a cancellation: the group's tickets become cancelled, one
// refund transaction is booked, and the disbursement goes out through the
// payout gateway. The gateway call happens after commit; a gateway failure
// leaves the bookkeeping in place and surfaces as an external error for the
// admin to settle manually.
func (s *RefundService) Approve(ctx context.Context, requestID string) (models.RefundRequest, error) {
	record, err := s.app.FindRecordById("refund_request_mapping", requestID)
	if err != nil {
		return models.RefundRequest{}, fmt.Errorf("refund request %s: %w", requestID, status.ErrNotFound)
	}
	request := recordToRefundRequest(record)

	if !models.CanTransitionRefund(request.Status, models.RefundStatusApproved) {
		return models.RefundRequest{}, fmt.Errorf("refund request %s is %s: %w",
			requestID, request.Status, status.ErrConflict)
	}

	reference, err := utils.GenerateCode(8)
	if err != nil {
		return models.RefundRequest{}, err
	}

	var refundTotal decimal.Decimal
	err = s.app.RunInTransaction(func(txApp core.App) error {
		tickets, err := findGroupTickets(txApp, request.ReservationID, request.OwnerID, models.TicketStatusCancelRequested)
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			return fmt.Errorf("no pending tickets for refund request %s: %w", requestID, status.ErrConflict)
		}

		if err := transitionGroupRecords(txApp, tickets, models.TicketStatusCancelled); err != nil {
			return err
		}

		refundTotal = models.RefundAmount(sumTicketPrices(tickets), request.RefundPercent)

		if err := saveTransaction(txApp, request.ReservationID, request.OwnerID,
			models.TransactionTypeRefund, refundTotal, reference); err != nil {
			return err
		}

		record.Set("status", models.RefundStatusApproved)
		return txApp.Save(record)
	})
	if err != nil {
		monitoring.TrackCancellation("approve", "failed")
		return models.RefundRequest{}, err
	}

	monitoring.TrackCancellation("approve", "ok")
	s.notifier.NotifyUser(request.OwnerID, map[string]any{
		"type":           "refund_approved",
		"reservation_id": request.ReservationID,
		"refund_percent": request.RefundPercent,
		"amount":         refundTotal.String(),
	})

	if _, err := s.gateway.Disburse(ctx, &payout.DisbursementRequest{
		Amount:        refundTotal,
		Currency:      "LAK",
		Reference:     reference,
		AccountBank:   request.AccountBank,
		AccountNumber: request.AccountNumber,
		AccountHolder: request.AccountHolder,
		Description:   fmt.Sprintf("refund for reservation %s", request.ReservationID),
	}); err != nil {
		return recordToRefundRequest(record), err
	}

	return recordToRefundRequest(record), nil
}

// Reject sends the group's tickets back to active and closes the request.
func (s *RefundService) Reject(ctx context.Context, requestID string) (models.RefundRequest, error) {
	record, err := s.app.FindRecordById("refund_request_mapping", requestID)
	if err != nil {
		return models.RefundRequest{}, fmt.Errorf("refund request %s: %w", requestID, status.ErrNotFound)
	}
	request := recordToRefundRequest(record)

	if !models.CanTransitionRefund(request.Status, models.RefundStatusRejected) {
		return models.RefundRequest{}, fmt.Errorf("refund request %s is %s: %w",
			requestID, request.Status, status.ErrConflict)
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		tickets, err := findGroupTickets(txApp, request.ReservationID, request.OwnerID, models.TicketStatusCancelRequested)
		if err != nil {
			return err
		}
		if err := transitionGroupRecords(txApp, tickets, models.TicketStatusActive); err != nil {
			return err
		}

		record.Set("status", models.RefundStatusRejected)
		return txApp.Save(record)
	})
	if err != nil {
		monitoring.TrackCancellation("reject", "failed")
		return models.RefundRequest{}, err
	}

	monitoring.TrackCancellation("reject", "ok")
	s.notifier.NotifyUser(request.OwnerID, map[string]any{
		"type":           "refund_rejected",
		"reservation_id": request.ReservationID,
	})

	return recordToRefundRequest(record), nil
}

// ListByOwner returns the user's refund requests, newest first.
func (s *RefundService) ListByOwner(ctx context.Context, ownerID string) ([]models.RefundRequest, error) {
	records, err := s.app.FindRecordsByFilter(
		"refund_request_mapping",
		"owner_id = {:ownerId}",
		"-created",
		50,
		0,
		map[string]any{"ownerId": ownerID},
	)
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}

	requests := make([]models.RefundRequest, 0, len(records))
	for _, record := range records {
		requests = append(requests, recordToRefundRequest(record))
	}
	return requests, nil
}
