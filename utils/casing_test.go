package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeToCamelKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"owner_id", "ownerId"},
		{"transferred_at", "transferredAt"},
		{"seat_capacity", "seatCapacity"},
		{"status", "status"},
		{"refund_request_mapping", "refundRequestMapping"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnakeToCamelKey(tt.in))
	}
}

func TestCamelToSnakeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ownerId", "owner_id"},
		{"transferredAt", "transferred_at"},
		{"status", "status"},
		{"expiresAt", "expires_at"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CamelToSnakeKey(tt.in))
	}
}

func TestCasingRoundTrip(t *testing.T) {
	keys := []string{"owner_id", "from_user_id", "expires_at", "status", "reservation_id", "seat_capacity"}
	for _, k := range keys {
		assert.Equal(t, k, CamelToSnakeKey(SnakeToCamelKey(k)), "round trip must return the original key")
	}
}

func TestToCamelKeys_Nested(t *testing.T) {
	in := map[string]any{
		"owner_id": "alice",
		"tickets": []any{
			map[string]any{"ticket_id": "tk1", "transferred_at": nil},
			map[string]any{"ticket_id": "tk2"},
		},
		"event": map[string]any{"seat_capacity": 100},
	}

	got := ToCamelKeys(in)

	assert.Equal(t, "alice", got["ownerId"])
	tickets := got["tickets"].([]any)
	assert.Equal(t, "tk1", tickets[0].(map[string]any)["ticketId"])
	assert.Contains(t, tickets[0].(map[string]any), "transferredAt")
	assert.Equal(t, 100, got["event"].(map[string]any)["seatCapacity"])

	// Input must not be mutated.
	assert.Contains(t, in, "owner_id")
}

func TestToSnakeKeys_InvertsToCamelKeys(t *testing.T) {
	in := map[string]any{
		"reservation_id": "rsv1",
		"entry_session":  map[string]any{"expires_at": "2024-06-10 19:00:00.000Z"},
	}

	assert.Equal(t, in, ToSnakeKeys(ToCamelKeys(in)))
}
