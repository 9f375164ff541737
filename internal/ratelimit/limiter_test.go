package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := NewConversationLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	assert.True(t, l.Allow("c1"))
	assert.True(t, l.Allow("c1"))
	assert.False(t, l.Allow("c1"), "burst exhausted")
}

func TestConversationsHaveIndependentBuckets(t *testing.T) {
	l := NewConversationLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	assert.True(t, l.Allow("c1"))
	assert.False(t, l.Allow("c1"))
	assert.True(t, l.Allow("c2"))
}

func TestGetLimiterReusesInstance(t *testing.T) {
	l := NewConversationLimiterWithDefaults()

	first := l.GetLimiter("c1")
	second := l.GetLimiter("c1")
	assert.Same(t, first, second)
	assert.NotSame(t, first, l.GetLimiter("c2"))
}
