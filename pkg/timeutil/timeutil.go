package timeutil

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoffDelay returns initial * multiplier^(attempt-1), capped at
// the max duration, plus a random jitter in [0, jitter).
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), float64(attempt-1))
	if maxDelay := float64(param.MaxDuration()); maxDelay > 0 && delay > maxDelay {
		delay = maxDelay
	}
	if jitter > 0 && rng != nil {
		delay += float64(rng.Int63n(int64(jitter)))
	}
	return time.Duration(delay)
}

// MaxDuration returns the largest duration, or zero for an empty slice.
func MaxDuration(durations []time.Duration) time.Duration {
	var highest time.Duration
	for _, d := range durations {
		if d > highest {
			highest = d
		}
	}
	return highest
}

// SleepContext waits for d or until ctx is done, whichever happens first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
