package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/models"
)

func TestCamelizePayload(t *testing.T) {
	transferredAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"remaining_capacity": 3,
		"tickets": []models.Ticket{
			{ID: "tk1", ReservationID: "rsv1", OwnerID: "alice", Status: models.TicketStatusActive, TransferredAt: &transferredAt},
		},
	}

	out, err := camelizePayload(payload)
	require.NoError(t, err)

	m := out.(map[string]any)
	assert.Equal(t, float64(3), m["remainingCapacity"])

	ticket := m["tickets"].([]any)[0].(map[string]any)
	assert.Equal(t, "rsv1", ticket["reservationId"])
	assert.Equal(t, "alice", ticket["ownerId"])
	assert.Contains(t, ticket, "transferredAt")
	assert.NotContains(t, ticket, "reservation_id", "no snake_case key may leak out")
}

func TestCamelizePayload_NonObject(t *testing.T) {
	out, err := camelizePayload([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDecodeBody_CamelCase(t *testing.T) {
	var req struct {
		EventID      string `json:"event_id"`
		Quantity     int    `json:"quantity"`
		TicketHolder string `json:"ticket_holder"`
	}

	body := `{"eventId":"ev1","quantity":2,"ticketHolder":"Alice Smith"}`
	require.NoError(t, decodeBody(strings.NewReader(body), &req))

	assert.Equal(t, "ev1", req.EventID)
	assert.Equal(t, 2, req.Quantity)
	assert.Equal(t, "Alice Smith", req.TicketHolder)
}

func TestDecodeBody_SnakeCasePassesThrough(t *testing.T) {
	var req struct {
		ReservationID string `json:"reservation_id"`
	}

	require.NoError(t, decodeBody(strings.NewReader(`{"reservation_id":"rsv1"}`), &req))
	assert.Equal(t, "rsv1", req.ReservationID)
}

func TestDecodeBody_Malformed(t *testing.T) {
	var req struct{}
	assert.Error(t, decodeBody(strings.NewReader(""), &req))
	assert.Error(t, decodeBody(strings.NewReader(`[1,2]`), &req))
}
