package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	assert.True(t, validPhone("+8562055512345"))
	assert.True(t, validPhone("2055512345"))
	assert.True(t, validPhone("12345678"))

	assert.False(t, validPhone(""))
	assert.False(t, validPhone("1234567"), "too short")
	assert.False(t, validPhone("+12345678901234567"), "too long")
	assert.False(t, validPhone("205-551-2345"))
	assert.False(t, validPhone("+856 20 555 123"))
	assert.False(t, validPhone("abc12345678"))
}

func TestValidBankAccount(t *testing.T) {
	assert.True(t, validBankAccount("123456"))
	assert.True(t, validBankAccount("00123456789012345678"))

	assert.False(t, validBankAccount("12345"), "too short")
	assert.False(t, validBankAccount("012345678901234567890"), "too long")
	assert.False(t, validBankAccount("12 3456"))
	assert.False(t, validBankAccount("LA1234567"))
}

func TestValidAccountHolder(t *testing.T) {
	assert.True(t, validAccountHolder("Alice Smith"))
	assert.True(t, validAccountHolder("O'Brien"))
	assert.True(t, validAccountHolder("Jean-Pierre Martin"))
	assert.True(t, validAccountHolder("J. R. Smith"))
	assert.True(t, validAccountHolder("ສົມຈິດ ວົງສະຫວັນ"))

	assert.False(t, validAccountHolder("A"), "too short")
	assert.False(t, validAccountHolder(""))
	assert.False(t, validAccountHolder("Alice <script>"))
	assert.False(t, validAccountHolder("Acme Ltd. #42"))
}
