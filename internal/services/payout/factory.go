package payout

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// New returns the gateway for the configured provider. A missing base URL
// yields the noop gateway so development environments work without bank
// credentials.
func New(cfg *ClientConfig) Gateway {
	if cfg.BaseURL == "" || cfg.Provider == ProviderNoop {
		return &noopGateway{}
	}
	return NewClient(cfg)
}

// noopGateway logs disbursements instead of submitting them.
type noopGateway struct{}

func (g *noopGateway) GetProvider() Provider {
	return ProviderNoop
}

func (g *noopGateway) Disburse(_ context.Context, req *DisbursementRequest) (string, error) {
	slog.Info("payout: noop disburse",
		"reference", req.Reference,
		"amount", req.Amount.String(),
		"currency", req.Currency,
	)
	return "noop-" + req.Reference, nil
}

func (g *noopGateway) CheckDisbursement(_ context.Context, reference string) (*DisbursementStatus, error) {
	return &DisbursementStatus{
		Reference: reference,
		RefID:     "noop-" + reference,
		Status:    "settled",
		Amount:    decimal.Zero,
	}, nil
}

func (g *noopGateway) Close(_ context.Context) error {
	return nil
}
