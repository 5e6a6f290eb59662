package payout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hmac256 generates an HMAC-SHA256 hex digest over body with key. Every
// gateway request body is signed this way.
func Hmac256(body, key []byte) string {
	hash := hmac.New(sha256.New, key)
	hash.Write(body)
	return hex.EncodeToString(hash.Sum(nil))
}

// VerifySignature checks a webhook signature against the shared key in
// constant time.
func VerifySignature(key, body []byte, receivedHMAC string) bool {
	expected := Hmac256(body, key)
	return hmac.Equal([]byte(receivedHMAC), []byte(expected))
}

// HashCredential bcrypt-hashes a gateway credential for at-rest storage.
func HashCredential(secret []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareCredential reports whether secret matches a stored bcrypt hash.
func CompareCredential(storedHash, secret []byte) bool {
	return bcrypt.CompareHashAndPassword(storedHash, secret) == nil
}
