package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type EntryHandler struct {
	app     *pocketbase.PocketBase
	entries *services.EntryService
}

func NewEntryHandler(app *pocketbase.PocketBase, entries *services.EntryService) *EntryHandler {
	return &EntryHandler{
		app:     app,
		entries: entries,
	}
}

// Create - open a check-in session for the caller's tickets on a reservation
func (h *EntryHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventID       string `json:"event_id"`
		ReservationID string `json:"reservation_id"`
	}
	if err := bindBody(e, &req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.entries.Create(e.Request.Context(), req.EventID, e.Auth.Id, req.ReservationID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, session)
}

// Get - a session is only visible while pending and unexpired
func (h *EntryHandler) Get(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	sessionID := e.Request.PathValue("id")

	session, err := h.entries.Get(e.Request.Context(), sessionID)
	if err != nil {
		return toApiError(err)
	}
	if session.UserID != e.Auth.Id && !e.Auth.IsSuperuser() {
		return apis.NewNotFoundError("Entry session not found", nil)
	}

	return respond(e, http.StatusOK, session)
}

// Use - gate staff consume the session; tickets cascade to used
func (h *EntryHandler) Use(e *core.RequestEvent) error {
	sessionID := e.Request.PathValue("id")

	session, err := h.entries.MarkUsed(e.Request.Context(), sessionID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, session)
}
