package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/status"
)

func TestReservedSeats_CacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewEventService(nil, db, 30*time.Second)

	// A fresh cache entry answers without touching the database; the service
	// has a nil app here precisely so a fallthrough would blow up the test.
	mock.ExpectGet("capacity:reserved:ev1").SetVal("42")

	n, err := svc.ReservedSeats(context.Background(), "ev1")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedSeats_CacheError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewEventService(nil, db, 30*time.Second)

	mock.ExpectGet("capacity:reserved:ev1").SetErr(errors.New("connection refused"))

	_, err := svc.ReservedSeats(context.Background(), "ev1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExternal))
}

func TestInvalidateCapacity(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewEventService(nil, db, 30*time.Second)

	mock.ExpectDel("capacity:reserved:ev1").SetVal(1)

	svc.InvalidateCapacity(context.Background(), "ev1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
