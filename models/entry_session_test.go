package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/status"
)

func TestEntrySessionVisible(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	session := EntrySession{Status: EntryStatusPending, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, session.Visible(now))

	// Past expiry reads as gone even though the row still exists.
	assert.False(t, session.Visible(now.Add(2*time.Hour)))
	assert.False(t, session.Visible(session.ExpiresAt), "expiry instant is exclusive")

	used := EntrySession{Status: EntryStatusUsed, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, used.Visible(now))

	expired := EntrySession{Status: EntryStatusExpired, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, expired.Visible(now))
}

func TestEntrySessionMarkUsed(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := EntrySession{ID: "es1", Status: EntryStatusPending, ExpiresAt: now.Add(time.Hour)}

	used, err := session.MarkUsed(now)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusUsed, used.Status)
	require.NotNil(t, used.UsedAt)
	assert.Equal(t, now, *used.UsedAt)

	// Second scan is a conflict, not a silent success.
	_, err = used.MarkUsed(now.Add(time.Minute))
	assert.True(t, errors.Is(err, status.ErrConflict))
}

func TestEntrySessionMarkUsed_Expired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := EntrySession{ID: "es1", Status: EntryStatusPending, ExpiresAt: now}

	_, err := session.MarkUsed(now)
	assert.True(t, errors.Is(err, status.ErrNotFound), "expired session scans like a missing one")

	_, err = session.MarkUsed(now.Add(time.Hour))
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestEntrySessionJSON_Code(t *testing.T) {
	session := EntrySession{ID: "es1", Code: "123456", Status: EntryStatusPending}

	data, err := json.Marshal(session)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code":"123456"`)
}

func TestEntrySessionMarkUsed_SweptRow(t *testing.T) {
	session := EntrySession{ID: "es1", Status: EntryStatusExpired, ExpiresAt: time.Now().Add(time.Hour)}

	_, err := session.MarkUsed(time.Now())
	assert.True(t, errors.Is(err, status.ErrConflict))
}
