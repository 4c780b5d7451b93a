package fetcher

import (
	"context"

	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/retry"
)

// Fetcher retrieves one HTML page, retrying recoverable failures as
// retryParam allows. Non-HTML responses are failures, not empty results.
type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
