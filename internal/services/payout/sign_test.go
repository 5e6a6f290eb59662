package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHmac256(t *testing.T) {
	key := []byte("secret-key")
	body := []byte(`{"exReferenceNo":"RF001","txnAmount":"75000"}`)

	sig := Hmac256(body, key)
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, Hmac256(body, key), "signing is deterministic")
	assert.NotEqual(t, sig, Hmac256(body, []byte("other-key")))
	assert.NotEqual(t, sig, Hmac256([]byte(`{}`), key))
}

func TestVerifySignature(t *testing.T) {
	key := []byte("secret-key")
	body := []byte("webhook body")
	sig := Hmac256(body, key)

	assert.True(t, VerifySignature(key, body, sig))
	assert.False(t, VerifySignature(key, body, sig[:len(sig)-1]+"0"))
	assert.False(t, VerifySignature(key, []byte("tampered body"), sig))
	assert.False(t, VerifySignature([]byte("wrong key"), body, sig))
	assert.False(t, VerifySignature(key, body, ""))
}

func TestCredentialHashing(t *testing.T) {
	secret := []byte("merchant-secret")

	hash, err := HashCredential(secret)
	require.NoError(t, err)
	assert.NotEqual(t, string(secret), hash)

	assert.True(t, CompareCredential([]byte(hash), secret))
	assert.False(t, CompareCredential([]byte(hash), []byte("wrong-secret")))
}
