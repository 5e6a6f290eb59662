package payout

import (
	"context"

	"github.com/shopspring/decimal"
)

// Provider identifies a refund disbursement backend.
type Provider string

const (
	ProviderJDB  Provider = "jdb"
	ProviderLDB  Provider = "ldb"
	ProviderNoop Provider = "noop"
)

// DisbursementRequest asks the gateway to move a refund to a user's account.
type DisbursementRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Reference     string          `json:"reference"`
	AccountBank   string          `json:"account_bank"`
	AccountNumber string          `json:"account_number"`
	AccountHolder string          `json:"account_holder"`
	Description   string          `json:"description,omitempty"`
}

// DisbursementStatus is the gateway's view of one disbursement.
type DisbursementStatus struct {
	Reference string          `json:"reference"`
	RefID     string          `json:"ref_id"`
	Status    string          `json:"status"` // submitted, settled, failed
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Timestamp int64           `json:"timestamp"`
}

// Gateway is the common interface for refund disbursement providers.
type Gateway interface {
	// GetProvider returns the provider type.
	GetProvider() Provider

	// Disburse submits a refund payout and returns the gateway reference.
	Disburse(ctx context.Context, req *DisbursementRequest) (string, error)

	// CheckDisbursement checks the status of a previously submitted payout.
	CheckDisbursement(ctx context.Context, reference string) (*DisbursementStatus, error)

	// Close gracefully closes any connections.
	Close(ctx context.Context) error
}
