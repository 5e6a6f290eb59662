package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type TicketHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
}

func NewTicketHandler(app *pocketbase.PocketBase, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{
		app:     app,
		tickets: tickets,
	}
}

// Transfer - move a ticket to another account; the sender must own it
func (h *TicketHandler) Transfer(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ticketID := e.Request.PathValue("id")

	var req struct {
		ToUserID string `json:"to_user_id"`
		Reason   string `json:"reason"`
	}
	if err := bindBody(e, &req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.Transfer(e.Request.Context(), ticketID, e.Auth.Id, req.ToUserID, req.Reason)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, ticket)
}

// List - tickets currently owned by the signed-in user
func (h *TicketHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	tickets, err := h.tickets.ListByOwner(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"tickets": tickets,
	})
}

// History - the ticket's transfer audit trail, visible to the current owner
func (h *TicketHandler) History(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ticketID := e.Request.PathValue("id")

	ticket, err := h.tickets.GetTicket(e.Request.Context(), ticketID)
	if err != nil {
		return toApiError(err)
	}
	if ticket.OwnerID != e.Auth.Id && !e.Auth.IsSuperuser() {
		return apis.NewForbiddenError("Access denied", nil)
	}

	history, err := h.tickets.History(e.Request.Context(), ticketID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"history": history,
	})
}
