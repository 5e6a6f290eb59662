package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type RefundHandler struct {
	app     *pocketbase.PocketBase
	refunds *services.RefundService
}

func NewRefundHandler(app *pocketbase.PocketBase, refunds *services.RefundService) *RefundHandler {
	return &RefundHandler{
		app:     app,
		refunds: refunds,
	}
}

// RequestCancellation - start the all-or-nothing cancellation of the
// caller's ticket group on a reservation
func (h *RefundHandler) RequestCancellation(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		ReservationID string `json:"reservation_id"`
		AccountBank   string `json:"account_bank"`
		AccountNumber string `json:"account_number"`
		AccountHolder string `json:"account_holder"`
	}
	if err := bindBody(e, &req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if !validBankAccount(req.AccountNumber) {
		return apis.NewBadRequestError("Invalid account number format", nil)
	}
	if !validAccountHolder(req.AccountHolder) {
		return apis.NewBadRequestError("Invalid account holder name", nil)
	}

	request, err := h.refunds.RequestCancellation(e.Request.Context(), req.ReservationID, e.Auth.Id, services.RefundAccount{
		Bank:   req.AccountBank,
		Number: req.AccountNumber,
		Holder: req.AccountHolder,
	})
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, request)
}

// List - the caller's refund requests
func (h *RefundHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	requests, err := h.refunds.ListByOwner(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"requests": requests,
	})
}

// Approve - admin approval: cancel the group, book and disburse the refund
func (h *RefundHandler) Approve(e *core.RequestEvent) error {
	requestID := e.Request.PathValue("id")

	request, err := h.refunds.Approve(e.Request.Context(), requestID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, request)
}

// Reject - admin rejection: the group's tickets go back to active
func (h *RefundHandler) Reject(e *core.RequestEvent) error {
	requestID := e.Request.PathValue("id")

	request, err := h.refunds.Reject(e.Request.Context(), requestID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, request)
}

// Quote - the refund percentage a cancellation would get right now
func (h *RefundHandler) Quote(e *core.RequestEvent) error {
	eventID := e.Request.URL.Query().Get("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	eventRecord, err := h.app.FindRecordById("events", eventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	eventDate := eventRecord.GetDateTime("date").Time()
	return respond(e, http.StatusOK, map[string]any{
		"event_id":       eventID,
		"event_date":     eventDate.Format(time.RFC3339),
		"refund_percent": h.refunds.Quote(eventDate),
	})
}
