package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuspiciousUserAgent(t *testing.T) {
	limiter := NewRateLimiter(nil)

	assert.True(t, limiter.isSuspiciousUserAgent("Googlebot/2.1"))
	assert.True(t, limiter.isSuspiciousUserAgent("my-scraper 1.0"))
	assert.True(t, limiter.isSuspiciousUserAgent("WebCrawler"))
	assert.True(t, limiter.isSuspiciousUserAgent("SPIDER"))

	assert.False(t, limiter.isSuspiciousUserAgent("Mozilla/5.0 (X11; Linux x86_64)"))
	assert.False(t, limiter.isSuspiciousUserAgent(""))
}
