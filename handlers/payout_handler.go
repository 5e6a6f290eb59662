package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/internal/services/payout"
)

// PayoutHandler receives disbursement status callbacks from the payout
// gateway. The gateway authenticates with an HMAC signature over the raw
// request body, plus an optional shared token checked against a bcrypt hash
// from the configuration. This surface speaks the gateway's field names, not
// the client API's.
type PayoutHandler struct {
	app       *pocketbase.PocketBase
	secretKey []byte
	tokenHash string
}

func NewPayoutHandler(app *pocketbase.PocketBase, secretKey, tokenHash string) *PayoutHandler {
	return &PayoutHandler{
		app:       app,
		secretKey: []byte(secretKey),
		tokenHash: tokenHash,
	}
}

// Webhook - gateway callback recording the disbursement outcome on the
// matching refund transaction
func (h *PayoutHandler) Webhook(e *core.RequestEvent) error {
	body, err := io.ReadAll(e.Request.Body)
	if err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := authorizeWebhook(h.secretKey, h.tokenHash, body,
		e.Request.Header.Get("X-Signature"), e.Request.Header.Get("X-Webhook-Token")); err != nil {
		return apis.NewForbiddenError("Access denied", nil)
	}

	var payload struct {
		Reference string `json:"exReferenceNo"`
		RefID     string `json:"refNo"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if payload.Reference == "" || !validGatewayStatus(payload.Status) {
		return apis.NewBadRequestError("Invalid request", nil)
	}

	record, err := h.app.FindFirstRecordByData("payment_transactions", "reference", payload.Reference)
	if err != nil {
		return apis.NewNotFoundError("Unknown reference", nil)
	}

	record.Set("gateway_status", payload.Status)
	if err := h.app.Save(record); err != nil {
		return toApiError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// authorizeWebhook checks the HMAC signature over the raw body and, when a
// token hash is configured, the shared webhook token.
func authorizeWebhook(secretKey []byte, tokenHash string, body []byte, signature, token string) error {
	if !payout.VerifySignature(secretKey, body, signature) {
		return fmt.Errorf("signature mismatch")
	}
	if tokenHash != "" && !payout.CompareCredential([]byte(tokenHash), []byte(token)) {
		return fmt.Errorf("token mismatch")
	}
	return nil
}

func validGatewayStatus(s string) bool {
	switch s {
	case "submitted", "settled", "failed":
		return true
	}
	return false
}
