package limiter

import "time"

// hostTiming is the per-host politeness state. Values are copied in and out
// of the limiter map under its mutex, so the accessors take value receivers.
type hostTiming struct {
	lastFetchAt  time.Time
	backoffDelay time.Duration
	backoffCount int
}

func (h hostTiming) BackOffDelay() time.Duration {
	return h.backoffDelay
}

func (h hostTiming) LastFetchAt() time.Time {
	return h.lastFetchAt
}

func (h hostTiming) BackoffCount() int {
	return h.backoffCount
}
