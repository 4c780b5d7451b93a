package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/retry"
)

/*
Responsibilities

- Perform HTTP requests for --url inputs
- Apply headers and timeouts
- Classify responses

Fetch Semantics

- Only successful HTML responses are processed
- Non-HTML content is rejected
- Transport failures, 5xx and 429 are retried
- Every fetch is recorded with metadata

The fetcher never parses or decodes content; it only returns bytes and the
response headers the decoder needs.
*/

// maxBodyBytes bounds the size of a fetched document.
const maxBodyBytes = 32 << 20

var _ Fetcher = (*HtmlFetcher)(nil)

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
) *HtmlFetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()

	attempts := 0
	fetchTask := func() (FetchResult, failure.ClassifiedError) {
		attempts++
		return h.performFetch(ctx, fetchParam.fetchUrl, fetchParam.userAgent)
	}
	result, err := retry.Retry(ctx, retryParam, fetchTask)

	var statusCode int
	var contentType string
	if err == nil {
		result.attempts = attempts
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl.String(),
		statusCode,
		time.Since(startTime),
		contentType,
		attempts,
	)

	if err != nil {
		h.recordError(callerMethod, fetchParam.fetchUrl, err)
		return FetchResult{}, err
	}
	return result, nil
}

func (h *HtmlFetcher) recordError(callerMethod string, fetchUrl url.URL, err failure.ClassifiedError) {
	cause := metadata.CauseUnknown
	var fetchError *FetchError
	var retryError *retry.RetryError
	switch {
	case errors.As(err, &fetchError):
		cause = mapFetchErrorToMetadataCause(fetchError)
	case errors.As(err, &retryError):
		cause = metadata.CauseRetryFailure
	}

	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
			metadata.NewAttr(metadata.AttrHost, fetchUrl.Hostname()),
		},
	)
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchUrl url.URL, userAgent string) (FetchResult, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	for key, value := range requestHeaders(userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		// a cancelled context will not get better on retry
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: ctx.Err() == nil,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}

	case resp.StatusCode == http.StatusTooManyRequests:
		return FetchResult{}, &FetchError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}

	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("access denied (%d)", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRequestPageForbidden,
		}

	case resp.StatusCode >= 400:
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("client error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRequestClientError,
		}

	case resp.StatusCode >= 300:
		// http.Client follows redirects; reaching here means it gave up
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("redirect error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRedirectLimitExceeded,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContent(contentType) {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("non-HTML content type: %s", contentType),
			Retryable: false,
			Cause:     ErrCauseContentTypeInvalid,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
		}
	}
	if len(body) > maxBodyBytes {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("body exceeds %d bytes", maxBodyBytes),
			Retryable: false,
			Cause:     ErrCauseBodyTooLarge,
		}
	}

	responseHeaders := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			responseHeaders[key] = values[0]
		}
	}

	return FetchResult{
		url:  fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(len(body)),
			responseHeaders:     responseHeaders,
		},
	}, nil
}

// isHTMLContent accepts HTML and XHTML. A missing header is accepted too;
// the decoder and parser cope with whatever arrives.
func isHTMLContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
