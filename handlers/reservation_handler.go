package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type ReservationHandler struct {
	app          *pocketbase.PocketBase
	reservations *services.ReservationService
}

func NewReservationHandler(app *pocketbase.PocketBase, reservations *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		app:          app,
		reservations: reservations,
	}
}

// Create - book a pending reservation for the signed-in user
func (h *ReservationHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	if !e.Auth.GetBool("verified") {
		return apis.NewForbiddenError("Confirm your email before booking", nil)
	}

	var req struct {
		EventID      string `json:"event_id"`
		Quantity     int    `json:"quantity"`
		TicketHolder string `json:"ticket_holder"`
	}
	if err := bindBody(e, &req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	reservation, err := h.reservations.Create(e.Request.Context(), e.Auth.Id, req.EventID, req.Quantity, req.TicketHolder)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, reservation)
}

// List - the signed-in user's reservations
func (h *ReservationHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	reservations, err := h.reservations.ListByUser(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"reservations": reservations,
	})
}

// Confirm - admin confirmation, issues the tickets
func (h *ReservationHandler) Confirm(e *core.RequestEvent) error {
	reservationID := e.Request.PathValue("id")

	reservation, err := h.reservations.Confirm(e.Request.Context(), reservationID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, reservation)
}

// Void - admin termination, cancels remaining tickets
func (h *ReservationHandler) Void(e *core.RequestEvent) error {
	reservationID := e.Request.PathValue("id")

	reservation, err := h.reservations.Void(e.Request.Context(), reservationID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, reservation)
}
