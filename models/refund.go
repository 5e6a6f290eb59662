package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RefundPolicyEntry maps a days-before-event threshold to a refund
// percentage. A cancellation N days before the event gets the rate of the
// first entry (sorted by DaysBefore descending) whose threshold is <= N.
type RefundPolicyEntry struct {
	DaysBefore int `json:"days_before"`
	Percent    int `json:"percent"`
}

type RefundPolicy struct {
	Entries []RefundPolicyEntry `json:"entries"`
}

// DefaultRefundPolicy: 5+ days full refund, 3-4 days 70%, 1-2 days 50%,
// day-of or later nothing.
var DefaultRefundPolicy = RefundPolicy{
	Entries: []RefundPolicyEntry{
		{DaysBefore: 5, Percent: 100},
		{DaysBefore: 3, Percent: 70},
		{DaysBefore: 1, Percent: 50},
	},
}

// RefundRate returns the refund percentage (0-100) for a cancellation at
// cancelledAt against an event on eventDate. Dates are compared by calendar
// day; cancelling on or after the event day always yields 0.
func RefundRate(eventDate, cancelledAt time.Time, policy RefundPolicy) int {
	daysBefore := daysBetween(cancelledAt, eventDate)
	if daysBefore <= 0 {
		return 0
	}

	entries := make([]RefundPolicyEntry, len(policy.Entries))
	copy(entries, policy.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DaysBefore > entries[j].DaysBefore
	})

	for _, e := range entries {
		if e.DaysBefore <= daysBefore {
			return e.Percent
		}
	}
	return 0
}

// RefundAmount applies a refund percentage to a ticket price sum.
func RefundAmount(total decimal.Decimal, percent int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// RefundRequest links one cancellation workflow instance to the refund
// account it pays out to. Exactly one row is created per request.
type RefundRequest struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	EventID       string    `json:"event_id"`
	OwnerID       string    `json:"owner_id"`
	AccountBank   string    `json:"account_bank"`
	AccountNumber string    `json:"account_number"`
	AccountHolder string    `json:"account_holder"`
	Status        string    `json:"status"` // requested, approved, rejected
	RefundPercent int       `json:"refund_percent"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
)

var refundTransitions = map[string][]string{
	RefundStatusRequested: {RefundStatusApproved, RefundStatusRejected},
	RefundStatusApproved:  {},
	RefundStatusRejected:  {},
}

func CanTransitionRefund(from, to string) bool {
	return canTransition(refundTransitions, from, to)
}
