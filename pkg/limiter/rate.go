package limiter

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rohmanhakim/justext/pkg/timeutil"
)

// RateLimiter spaces out requests to the same host.
// Responsibilities:
// - Bookkeep each hostname's last fetch timestamp
// - Compute the remaining delay for a hostname
// - Back off a host that answered with a retryable failure
type RateLimiter interface {
	Backoff(host string)
	ResetBackoff(host string)
	MarkLastFetchAsNow(host string)
	ResolveDelay(host string) time.Duration
	Wait(ctx context.Context, host string) error
}

var _ RateLimiter = (*ConcurrentRateLimiter)(nil)

type ConcurrentRateLimiter struct {
	mu          sync.Mutex
	rngMu       sync.Mutex
	baseDelay   time.Duration
	jitter      time.Duration
	backoff     timeutil.BackoffParam
	hostTimings map[string]hostTiming
	rng         *rand.Rand
}

func NewConcurrentRateLimiter(
	baseDelay time.Duration,
	jitter time.Duration,
	randomSeed int64,
	backoff timeutil.BackoffParam,
) *ConcurrentRateLimiter {
	return &ConcurrentRateLimiter{
		baseDelay:   baseDelay,
		jitter:      jitter,
		backoff:     backoff,
		hostTimings: make(map[string]hostTiming),
		rng:         rand.New(rand.NewSource(randomSeed)),
	}
}

// Backoff triggers exponential backoff for the given host.
// It increments the backoff counter and computes the delay.
func (r *ConcurrentRateLimiter) Backoff(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timing := r.hostTimings[host]
	timing.backoffCount++
	timing.backoffDelay = timeutil.ExponentialBackoffDelay(timing.backoffCount, 0, nil, r.backoff)
	r.hostTimings[host] = timing
}

// ResetBackoff resets the backoff counter for the given host.
// Called after a successful request to clear backoff state.
func (r *ConcurrentRateLimiter) ResetBackoff(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timing, exists := r.hostTimings[host]
	if exists {
		timing.backoffCount = 0
		timing.backoffDelay = 0
		r.hostTimings[host] = timing
	}
}

// Mark the given host lastFetch to time.Now()
func (r *ConcurrentRateLimiter) MarkLastFetchAsNow(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timing := r.hostTimings[host]
	timing.lastFetchAt = time.Now()
	r.hostTimings[host] = timing
}

// ResolveDelay returns how long a caller must still wait before hitting host.
// FinalDelay = max(BaseDelay, BackoffDelay) + Jitter, minus the time elapsed
// since the last fetch.
func (r *ConcurrentRateLimiter) ResolveDelay(host string) time.Duration {
	r.mu.Lock()
	timing, exists := r.hostTimings[host]
	base := r.baseDelay
	r.mu.Unlock()

	if !exists || timing.lastFetchAt.IsZero() {
		return 0
	}

	finalDelay := timeutil.MaxDuration([]time.Duration{base, timing.backoffDelay})
	finalDelay += r.computeJitter()

	elapsed := time.Since(timing.lastFetchAt)
	if elapsed < finalDelay {
		return finalDelay - elapsed
	}
	return 0
}

// Wait blocks until host may be fetched again and marks the fetch.
// The check and the mark are not atomic across goroutines; concurrent
// callers for one host may both proceed after the same delay.
func (r *ConcurrentRateLimiter) Wait(ctx context.Context, host string) error {
	if err := timeutil.SleepContext(ctx, r.ResolveDelay(host)); err != nil {
		return err
	}
	r.MarkLastFetchAsNow(host)
	return nil
}

func (r *ConcurrentRateLimiter) HostTiming(host string) (hostTiming, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timing, ok := r.hostTimings[host]
	return timing, ok
}

// computeJitter returns a pseudo-random duration in [0, jitter).
func (r *ConcurrentRateLimiter) computeJitter() time.Duration {
	if r.jitter <= 0 {
		return 0
	}
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return time.Duration(r.rng.Int63n(int64(r.jitter)))
}
