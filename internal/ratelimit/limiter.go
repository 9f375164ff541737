package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// ConversationLimiter throttles inbound messages per conversation so one
// runaway client cannot exhaust the AI parser quota for everyone else.
type ConversationLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 2,
		BurstSize:         5,
	}
}

func NewConversationLimiter(config RateLimitConfig) *ConversationLimiter {
	return &ConversationLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewConversationLimiterWithDefaults() *ConversationLimiter {
	return NewConversationLimiter(DefaultConfig())
}

func (l *ConversationLimiter) GetLimiter(conversationID string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[conversationID]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[conversationID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[conversationID] = limiter
	return limiter
}

// Allow reports whether one more message from this conversation fits within
// the limit right now.
func (l *ConversationLimiter) Allow(conversationID string) bool {
	return l.GetLimiter(conversationID).Allow()
}
