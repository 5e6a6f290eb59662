package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction is the bookkeeping row for money movement. Purchases are
// written on reservation confirmation, refunds on cancellation approval.
type PaymentTransaction struct {
	ID            string          `json:"id"`
	ReservationID string          `json:"reservation_id"`
	UserID        string          `json:"user_id"`
	Type          string          `json:"type"` // purchase, refund
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

const (
	TransactionTypePurchase = "purchase"
	TransactionTypeRefund   = "refund"
)
