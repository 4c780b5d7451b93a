package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/rohmanhakim/justext/internal/fetcher"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/fileutil"
	"github.com/rohmanhakim/justext/pkg/limiter"
	"github.com/rohmanhakim/justext/pkg/retry"
)

/*
 Loader reads sources into memory.

 - Files and stdin are read whole.
 - URLs go through the fetcher; requests to one host are spaced by the
   rate limiter, which backs off after recoverable failures and resets
   after a success.
*/

type Loader struct {
	fetcher    fetcher.Fetcher
	limiter    limiter.RateLimiter
	retryParam retry.RetryParam
	userAgent  string
	stdin      io.Reader
}

func NewLoader(
	htmlFetcher fetcher.Fetcher,
	rateLimiter limiter.RateLimiter,
	retryParam retry.RetryParam,
	userAgent string,
	stdin io.Reader,
) *Loader {
	return &Loader{
		fetcher:    htmlFetcher,
		limiter:    rateLimiter,
		retryParam: retryParam,
		userAgent:  userAgent,
		stdin:      stdin,
	}
}

func (l *Loader) Load(ctx context.Context, source Source) (Input, failure.ClassifiedError) {
	if source.Kind() != SourceURL {
		raw, err := fileutil.ReadInput(source.Name(), l.stdin)
		if err != nil {
			return Input{}, err
		}
		return Input{Source: source, Raw: raw}, nil
	}

	fetchUrl := source.URL()
	host := fetchUrl.Hostname()
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx, host); err != nil {
			return Input{}, &PipelineError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseCancelled,
			}
		}
	}

	result, err := l.fetcher.Fetch(ctx, fetcher.NewFetchParam(fetchUrl, l.userAgent), l.retryParam)

	if l.limiter != nil {
		l.limiter.MarkLastFetchAsNow(host)
		if err == nil {
			l.limiter.ResetBackoff(host)
		} else if shouldBackoff(err) {
			l.limiter.Backoff(host)
		}
	}
	if err != nil {
		return Input{}, err
	}

	return Input{
		Source:      source,
		Raw:         result.Body(),
		ContentType: result.ContentType(),
	}, nil
}

// shouldBackoff reports whether a failed fetch means the host is struggling:
// retries ran out, or the last failure was itself retryable.
func shouldBackoff(err failure.ClassifiedError) bool {
	var retryErr *retry.RetryError
	if errors.As(err, &retryErr) {
		return retryErr.Cause == retry.ErrExhaustedAttempts
	}
	return !failure.IsFatal(err)
}
