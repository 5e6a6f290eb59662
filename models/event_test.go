package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveEventStatus(t *testing.T) {
	date := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)
	event := Event{ID: "ev1", Date: date, SeatCapacity: 100}

	tests := []struct {
		name     string
		now      time.Time
		reserved int
		want     string
	}{
		{"before event with seats", date.Add(-48 * time.Hour), 10, EventStatusUpcoming},
		{"before event sold out", date.Add(-48 * time.Hour), 100, EventStatusSoldout},
		{"before event oversold", date.Add(-48 * time.Hour), 105, EventStatusSoldout},
		{"at event start", date, 10, EventStatusOngoing},
		{"during event", date.Add(3 * time.Hour), 10, EventStatusOngoing},
		{"ongoing wins over sold out", date.Add(3 * time.Hour), 100, EventStatusOngoing},
		{"a day after", date.Add(24*time.Hour + time.Minute), 10, EventStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEventStatus(event, tt.reserved, tt.now))
		})
	}
}

func TestDeriveEventStatus_Override(t *testing.T) {
	date := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)
	event := Event{ID: "ev1", Date: date, SeatCapacity: 100, StatusOverride: EventStatusSoldout}

	// The pinned status wins regardless of clock or capacity.
	assert.Equal(t, EventStatusSoldout, DeriveEventStatus(event, 0, date.Add(-48*time.Hour)))
	assert.Equal(t, EventStatusSoldout, DeriveEventStatus(event, 0, date.Add(48*time.Hour)))
}

func TestRemainingCapacity(t *testing.T) {
	event := Event{SeatCapacity: 50}

	assert.Equal(t, 50, RemainingCapacity(event, 0))
	assert.Equal(t, 3, RemainingCapacity(event, 47))
	assert.Equal(t, -2, RemainingCapacity(event, 52), "advisory counter may go negative under races")
}

func TestTicketJSON_NullTransferredAt(t *testing.T) {
	ticket := Ticket{ID: "tk1", OwnerID: "alice", Status: TicketStatusActive}

	data, err := json.Marshal(ticket)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"transferred_at":null`)

	var decoded Ticket
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.TransferredAt)
}
