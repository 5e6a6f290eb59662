package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"ticket-booking/internal/status"
	"ticket-booking/utils"
)

// ClientConfig configures the HTTP payout client.
type ClientConfig struct {
	Provider   Provider      `json:"provider"`
	BaseURL    string        `json:"baseUrl"`
	MerchantID string        `json:"merchantId"`
	SecretKey  string        `json:"secretKey"`
	Timeout    time.Duration `json:"timeout"`
}

// Client talks to a bank disbursement API. Requests are HMAC-signed with the
// merchant secret; failures surface as ErrExternal and are never retried
// here.
type Client struct {
	provider   Provider
	baseURL    string
	merchantID string
	secretKey  []byte

	breaker *utils.CircuitBreaker
	hc      *http.Client
}

// NewClient creates a payout client for the configured provider.
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		provider:   cfg.Provider,
		baseURL:    cfg.BaseURL,
		merchantID: cfg.MerchantID,
		secretKey:  []byte(cfg.SecretKey),
		breaker:    utils.NewCircuitBreaker(fmt.Sprintf("payout-%s", cfg.Provider)),
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) GetProvider() Provider {
	return c.provider
}

type disbursePayload struct {
	MerchantID    string          `json:"merchantId"`
	Reference     string          `json:"exReferenceNo"`
	Amount        decimal.Decimal `json:"txnAmount"`
	Currency      string          `json:"sourceCurrency"`
	AccountBank   string          `json:"targetBank"`
	AccountNumber string          `json:"targetAccount"`
	AccountHolder string          `json:"targetName"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     string          `json:"txnDateTime"`
}

type disburseResponse struct {
	RefID   string `json:"refNo"`
	Code    string `json:"responseCode"`
	Message string `json:"responseMessage"`
}

func (c *Client) Disburse(ctx context.Context, req *DisbursementRequest) (string, error) {
	payload := disbursePayload{
		MerchantID:    c.merchantID,
		Reference:     req.Reference,
		Amount:        req.Amount,
		Currency:      req.Currency,
		AccountBank:   req.AccountBank,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		Description:   req.Description,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return c.post(ctx, "/v1/disbursements", payload)
	})
	if err != nil {
		return "", fmt.Errorf("payout disburse %s: %v: %w", req.Reference, err, status.ErrExternal)
	}

	var resp disburseResponse
	if err := json.Unmarshal(result.([]byte), &resp); err != nil {
		return "", fmt.Errorf("payout disburse %s: decode response: %v: %w", req.Reference, err, status.ErrExternal)
	}
	if resp.Code != "00" {
		return "", fmt.Errorf("payout disburse %s rejected: %s %s: %w", req.Reference, resp.Code, resp.Message, status.ErrExternal)
	}

	return resp.RefID, nil
}

type statusResponse struct {
	RefID     string          `json:"refNo"`
	Reference string          `json:"exReferenceNo"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"txnAmount"`
	Currency  string          `json:"sourceCurrency"`
	Timestamp int64           `json:"timestamp"`
}

func (c *Client) CheckDisbursement(ctx context.Context, reference string) (*DisbursementStatus, error) {
	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return c.get(ctx, "/v1/disbursements/"+reference)
	})
	if err != nil {
		return nil, fmt.Errorf("payout check %s: %v: %w", reference, err, status.ErrExternal)
	}

	var resp statusResponse
	if err := json.Unmarshal(result.([]byte), &resp); err != nil {
		return nil, fmt.Errorf("payout check %s: decode response: %v: %w", reference, err, status.ErrExternal)
	}

	return &DisbursementStatus{
		Reference: resp.Reference,
		RefID:     resp.RefID,
		Status:    resp.Status,
		Amount:    resp.Amount,
		Currency:  resp.Currency,
		Timestamp: resp.Timestamp,
	}, nil
}

func (c *Client) Close(_ context.Context) error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-Id", c.merchantID)
	req.Header.Set("X-Signature", Hmac256(body, c.secretKey))

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Merchant-Id", c.merchantID)
	req.Header.Set("X-Signature", Hmac256([]byte(path), c.secretKey))

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
