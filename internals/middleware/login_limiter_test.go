package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, cfg LoginLimiterConfig) *LoginLimiter {
	t.Helper()
	ll := NewLoginLimiter(cfg)
	t.Cleanup(ll.Stop)
	return ll
}

func TestLoginLimiter_BurstThenBlocked(t *testing.T) {
	ll := newTestLimiter(t, LoginLimiterConfig{Burst: 3, Refill: time.Hour, CleanupInterval: time.Hour})

	key := ll.Key("a@x.com", "10.0.0.1")
	for i := 0; i < 3; i++ {
		assert.True(t, ll.Allow(key), "attempt %d should pass", i+1)
	}
	assert.False(t, ll.Allow(key), "burst exhausted, attempt must be throttled")
}

func TestLoginLimiter_KeysAreIndependent(t *testing.T) {
	ll := newTestLimiter(t, LoginLimiterConfig{Burst: 1, Refill: time.Hour, CleanupInterval: time.Hour})

	assert.True(t, ll.Allow(ll.Key("a@x.com", "10.0.0.1")))
	assert.False(t, ll.Allow(ll.Key("a@x.com", "10.0.0.1")))

	// Same email from another IP, and another email from the same IP, are
	// separate budgets.
	assert.True(t, ll.Allow(ll.Key("a@x.com", "10.0.0.2")))
	assert.True(t, ll.Allow(ll.Key("b@x.com", "10.0.0.1")))
}

func TestLoginLimiter_ResetRestoresBudget(t *testing.T) {
	ll := newTestLimiter(t, LoginLimiterConfig{Burst: 1, Refill: time.Hour, CleanupInterval: time.Hour})

	key := ll.Key("a@x.com", "10.0.0.1")
	assert.True(t, ll.Allow(key))
	assert.False(t, ll.Allow(key))

	ll.Reset(key)
	assert.True(t, ll.Allow(key))
}

func TestLoginLimiter_CleanupSweepsIdleKeys(t *testing.T) {
	ll := newTestLimiter(t, LoginLimiterConfig{Burst: 1, Refill: time.Hour, CleanupInterval: time.Millisecond})

	ll.Allow(ll.Key("a@x.com", "10.0.0.1"))
	assert.Equal(t, 1, ll.Size())

	time.Sleep(5 * time.Millisecond)
	ll.cleanup()
	assert.Zero(t, ll.Size())
}
