package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRefundRate_DefaultPolicy(t *testing.T) {
	eventDate := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cancelledAt time.Time
		want        int
	}{
		{"five days before", time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), 100},
		{"four days before", time.Date(2024, 6, 6, 10, 0, 0, 0, time.UTC), 70},
		{"three days before", time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC), 70},
		{"two days before", time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC), 50},
		{"one day before", time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), 50},
		{"day of event", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), 0},
		{"after event", time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), 0},
		{"well in advance", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundRate(eventDate, tt.cancelledAt, DefaultRefundPolicy))
		})
	}
}

func TestRefundRate_ComparesCalendarDays(t *testing.T) {
	// Late-evening event, early-morning cancellation: still a full calendar
	// day apart.
	eventDate := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)
	cancelledAt := time.Date(2024, 6, 9, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, 50, RefundRate(eventDate, cancelledAt, DefaultRefundPolicy))
}

func TestRefundRate_UnsortedPolicy(t *testing.T) {
	// The selector must sort entries itself; order in the table is not a
	// contract.
	policy := RefundPolicy{
		Entries: []RefundPolicyEntry{
			{DaysBefore: 1, Percent: 50},
			{DaysBefore: 5, Percent: 100},
			{DaysBefore: 3, Percent: 70},
		},
	}
	eventDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 100, RefundRate(eventDate, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), policy))
	assert.Equal(t, 70, RefundRate(eventDate, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), policy))
}

func TestRefundRate_MonotonicNonIncreasing(t *testing.T) {
	eventDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	prev := 101
	for daysBefore := 10; daysBefore >= 0; daysBefore-- {
		cancelledAt := eventDate.AddDate(0, 0, -daysBefore)
		rate := RefundRate(eventDate, cancelledAt, DefaultRefundPolicy)
		assert.LessOrEqual(t, rate, prev, "rate must not increase as the event gets closer (day -%d)", daysBefore)
		prev = rate
	}
}

func TestRefundAmount(t *testing.T) {
	total := decimal.NewFromFloat(150000)

	assert.True(t, decimal.NewFromFloat(150000).Equal(RefundAmount(total, 100)))
	assert.True(t, decimal.NewFromFloat(105000).Equal(RefundAmount(total, 70)))
	assert.True(t, decimal.NewFromFloat(75000).Equal(RefundAmount(total, 50)))
	assert.True(t, decimal.Zero.Equal(RefundAmount(total, 0)))
}

func TestRefundAmount_RoundsToCents(t *testing.T) {
	total := decimal.NewFromFloat(33.33)

	got := RefundAmount(total, 70)
	assert.Equal(t, "23.33", got.StringFixed(2))
}

func TestCanTransitionRefund(t *testing.T) {
	assert.True(t, CanTransitionRefund(RefundStatusRequested, RefundStatusApproved))
	assert.True(t, CanTransitionRefund(RefundStatusRequested, RefundStatusRejected))

	// Decisions are terminal.
	assert.False(t, CanTransitionRefund(RefundStatusApproved, RefundStatusRejected))
	assert.False(t, CanTransitionRefund(RefundStatusRejected, RefundStatusApproved))
	assert.False(t, CanTransitionRefund(RefundStatusApproved, RefundStatusRequested))
	assert.False(t, CanTransitionRefund("unknown", RefundStatusApproved))
}
