package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiterConfig tunes the per-key login throttle.
type LoginLimiterConfig struct {
	// Burst is how many attempts a fresh key gets before throttling kicks in.
	Burst int
	// Refill is how often one attempt is handed back.
	Refill time.Duration
	// CleanupInterval controls the sweep of idle entries.
	CleanupInterval time.Duration
}

// DefaultLoginLimiterConfig allows 5 quick attempts per email+IP, then one
// every 30 seconds.
func DefaultLoginLimiterConfig() LoginLimiterConfig {
	return LoginLimiterConfig{
		Burst:           5,
		Refill:          30 * time.Second,
		CleanupInterval: 10 * time.Minute,
	}
}

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles login attempts per email+IP key. It sits outside the
// auth service: the handler consults it before attempting the login and
// resets the key after a success.
type LoginLimiter struct {
	config LoginLimiterConfig

	mu       sync.Mutex
	limiters map[string]*keyedLimiter

	stopCh chan struct{}
}

func NewLoginLimiter(config LoginLimiterConfig) *LoginLimiter {
	ll := &LoginLimiter{
		config:   config,
		limiters: make(map[string]*keyedLimiter),
		stopCh:   make(chan struct{}),
	}

	go ll.cleanupLoop()

	return ll
}

// Stop terminates the background cleanup goroutine.
func (ll *LoginLimiter) Stop() {
	close(ll.stopCh)
}

// Key builds the throttle key for a login attempt.
func (ll *LoginLimiter) Key(email, ip string) string {
	return email + "|" + ip
}

// Allow reports whether another attempt for the key may proceed now.
func (ll *LoginLimiter) Allow(key string) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	kl, ok := ll.limiters[key]
	if !ok {
		kl = &keyedLimiter{
			limiter: rate.NewLimiter(rate.Every(ll.config.Refill), ll.config.Burst),
		}
		ll.limiters[key] = kl
	}
	kl.lastAccess = time.Now()

	return kl.limiter.Allow()
}

// Reset forgets the key after a successful login so earlier failures don't
// count against the next session.
func (ll *LoginLimiter) Reset(key string) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	delete(ll.limiters, key)
}

// Size returns the number of tracked keys. For tests and metrics.
func (ll *LoginLimiter) Size() int {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return len(ll.limiters)
}

func (ll *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(ll.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ll.cleanup()
		case <-ll.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for longer than twice the cleanup interval.
func (ll *LoginLimiter) cleanup() {
	ttl := ll.config.CleanupInterval * 2
	now := time.Now()

	ll.mu.Lock()
	defer ll.mu.Unlock()

	for key, kl := range ll.limiters {
		if now.Sub(kl.lastAccess) > ttl {
			delete(ll.limiters, key)
		}
	}
}
