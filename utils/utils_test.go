package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 16, "n bytes encode to 2n hex chars")
	assert.Regexp(t, `^[0-9A-F]+$`, code)

	other, err := GenerateCode(8)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	assert.Regexp(t, `^[0-9]+$`, otp)
}

func TestCircuitBreaker_ClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_PassesThroughErrors(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("boom")

	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateClosed, cb.State(), "one failure must not trip the default breaker")
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	cb := NewCircuitBreakerWithSettings("test", BreakerSettings{
		MaxRequests:  2,
		FailureRatio: 0.5,
		Timeout:      50 * time.Millisecond,
	})
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, StateOpen, cb.State())

	// Open breaker fails fast without running the request.
	called := false
	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.Error(t, err)
	assert.False(t, called)

	// After the timeout a successful probe closes it again.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	_, err = cb.Execute(context.Background(), func() (interface{}, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}
