package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type EventHandler struct {
	app    *pocketbase.PocketBase
	events *services.EventService
}

func NewEventHandler(app *pocketbase.PocketBase, events *services.EventService) *EventHandler {
	return &EventHandler{
		app:    app,
		events: events,
	}
}

// List - public event listing with derived statuses
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.ListEvents(e.Request.Context())
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"events": events,
	})
}

// Get - one event with derived status and remaining capacity
func (h *EventHandler) Get(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("id")

	event, remaining, err := h.events.GetEvent(e.Request.Context(), eventID)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]any{
		"event":              event,
		"remaining_capacity": remaining,
	})
}
