package payout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/status"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&ClientConfig{
		Provider:   ProviderJDB,
		BaseURL:    srv.URL,
		MerchantID: "MCH001",
		SecretKey:  "secret-key",
	})
}

func TestClientDisburse(t *testing.T) {
	var gotBody []byte
	var gotSignature, gotMerchant string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/disbursements", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Signature")
		gotMerchant = r.Header.Get("X-Merchant-Id")

		json.NewEncoder(w).Encode(disburseResponse{RefID: "GW-42", Code: "00", Message: "success"})
	})

	refID, err := client.Disburse(context.Background(), &DisbursementRequest{
		Amount:        decimal.NewFromInt(75000),
		Currency:      "LAK",
		Reference:     "RF001",
		AccountBank:   "JDB",
		AccountNumber: "001234567",
		AccountHolder: "ALICE S",
	})
	require.NoError(t, err)
	assert.Equal(t, "GW-42", refID)
	assert.Equal(t, "MCH001", gotMerchant)

	// Signature must cover the exact body that was sent.
	assert.True(t, VerifySignature([]byte("secret-key"), gotBody, gotSignature))

	var payload disbursePayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "RF001", payload.Reference)
	assert.Equal(t, "MCH001", payload.MerchantID)
	assert.Equal(t, "LAK", payload.Currency)
}

func TestClientDisburse_Rejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(disburseResponse{Code: "51", Message: "insufficient funds"})
	})

	_, err := client.Disburse(context.Background(), &DisbursementRequest{Reference: "RF002"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExternal))
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestClientDisburse_HTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Disburse(context.Background(), &DisbursementRequest{Reference: "RF003"})
	assert.True(t, errors.Is(err, status.ErrExternal))
}

func TestClientCheckDisbursement(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/disbursements/RF001", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Signature"))

		json.NewEncoder(w).Encode(statusResponse{
			RefID:     "GW-42",
			Reference: "RF001",
			Status:    "settled",
			Amount:    decimal.NewFromInt(75000),
			Currency:  "LAK",
			Timestamp: 1717999200,
		})
	})

	st, err := client.CheckDisbursement(context.Background(), "RF001")
	require.NoError(t, err)
	assert.Equal(t, "RF001", st.Reference)
	assert.Equal(t, "GW-42", st.RefID)
	assert.Equal(t, "settled", st.Status)
	assert.True(t, decimal.NewFromInt(75000).Equal(st.Amount))
}
