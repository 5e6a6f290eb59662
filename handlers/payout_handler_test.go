package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/services/payout"
)

func TestAuthorizeWebhook(t *testing.T) {
	secret := []byte("secret-key")
	body := []byte(`{"exReferenceNo":"RF001","status":"settled"}`)
	signature := payout.Hmac256(body, secret)

	assert.NoError(t, authorizeWebhook(secret, "", body, signature, ""))

	assert.Error(t, authorizeWebhook(secret, "", body, "deadbeef", ""))
	assert.Error(t, authorizeWebhook(secret, "", []byte(`{"tampered":true}`), signature, ""))
	assert.Error(t, authorizeWebhook([]byte("other-key"), "", body, signature, ""))
}

func TestAuthorizeWebhook_Token(t *testing.T) {
	secret := []byte("secret-key")
	body := []byte(`{}`)
	signature := payout.Hmac256(body, secret)

	hash, err := payout.HashCredential([]byte("shared-token"))
	require.NoError(t, err)

	assert.NoError(t, authorizeWebhook(secret, hash, body, signature, "shared-token"))
	assert.Error(t, authorizeWebhook(secret, hash, body, signature, "wrong-token"))
	assert.Error(t, authorizeWebhook(secret, hash, body, signature, ""))

	// A valid token never substitutes for the signature.
	assert.Error(t, authorizeWebhook(secret, hash, body, "deadbeef", "shared-token"))
}

func TestValidGatewayStatus(t *testing.T) {
	assert.True(t, validGatewayStatus("submitted"))
	assert.True(t, validGatewayStatus("settled"))
	assert.True(t, validGatewayStatus("failed"))

	assert.False(t, validGatewayStatus(""))
	assert.False(t, validGatewayStatus("SETTLED"))
	assert.False(t, validGatewayStatus("unknown"))
}
