package retry

import (
	"time"

	"github.com/rohmanhakim/justext/pkg/timeutil"
)

// RetryParam controls how often and how patiently a failing operation is
// repeated. MaxAttempts counts the first try; 1 disables retrying.
// RandomSeed makes the jitter sequence reproducible in tests.
type RetryParam struct {
	Jitter       time.Duration
	RandomSeed   int64
	MaxAttempts  int
	BackoffParam timeutil.BackoffParam
}

func NewRetryParam(
	jitter time.Duration,
	randomSeed int64,
	maxAttempts int,
	backoffParam timeutil.BackoffParam,
) RetryParam {
	return RetryParam{
		Jitter:       jitter,
		RandomSeed:   randomSeed,
		MaxAttempts:  maxAttempts,
		BackoffParam: backoffParam,
	}
}
