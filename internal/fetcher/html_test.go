package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/justext/internal/fetcher"
	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/retry"
	"github.com/rohmanhakim/justext/pkg/timeutil"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	metadata.NoopSink
	fetchEvents []fetchEvent
	errorEvents []errorEvent
}

type fetchEvent struct {
	fetchUrl    string
	httpStatus  int
	contentType string
	retryCount  int
}

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
}

func (m *mockMetadataSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	_ time.Duration,
	contentType string,
	retryCount int,
) {
	m.fetchEvents = append(m.fetchEvents, fetchEvent{
		fetchUrl:    fetchUrl,
		httpStatus:  httpStatus,
		contentType: contentType,
		retryCount:  retryCount,
	})
}

func (m *mockMetadataSink) RecordError(
	_ time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	_ string,
	_ []metadata.Attribute,
) {
	m.errorEvents = append(m.errorEvents, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
	})
}

func createTestRetryParam(maxAttempts int) retry.RetryParam {
	return retry.NewRetryParam(
		time.Millisecond, // jitter
		42,               // randomSeed
		maxAttempts,
		timeutil.NewBackoffParam(
			time.Millisecond,
			2.0,
			5*time.Millisecond,
		),
	)
}

func fetchParam(t *testing.T, raw string) fetcher.FetchParam {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("bad url %q: %v", raw, err)
	}
	return fetcher.NewFetchParam(*u, "justext-test")
}

func TestHtmlFetcher_Fetch_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-2")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello World</body></html>"))
	}))
	defer server.Close()

	sink := &mockMetadataSink{}
	f := fetcher.NewHtmlFetcher(sink, server.Client())

	result, err := f.Fetch(context.Background(), fetchParam(t, server.URL), createTestRetryParam(3))

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Code() != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, result.Code())
	}
	if string(result.Body()) != "<html><body>Hello World</body></html>" {
		t.Errorf("unexpected body: %s", string(result.Body()))
	}
	if result.ContentType() != "text/html; charset=iso-8859-2" {
		t.Errorf("unexpected content type: %s", result.ContentType())
	}
	if result.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", result.Attempts())
	}
	if gotUserAgent != "justext-test" {
		t.Errorf("expected user agent to be sent, got %q", gotUserAgent)
	}

	if len(sink.fetchEvents) != 1 {
		t.Fatalf("expected 1 fetch event, got %d", len(sink.fetchEvents))
	}
	evt := sink.fetchEvents[0]
	if evt.fetchUrl != server.URL || evt.httpStatus != http.StatusOK || evt.retryCount != 1 {
		t.Errorf("unexpected fetch event: %+v", evt)
	}
	if len(sink.errorEvents) != 0 {
		t.Errorf("expected 0 error events, got %d", len(sink.errorEvents))
	}
}

func TestHtmlFetcher_Fetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<p>ok</p>"))
	}))
	defer server.Close()

	sink := &mockMetadataSink{}
	f := fetcher.NewHtmlFetcher(sink, server.Client())

	result, err := f.Fetch(context.Background(), fetchParam(t, server.URL), createTestRetryParam(5))

	if err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	if result.Attempts() != 3 {
		t.Errorf("expected 3 attempts, got %d", result.Attempts())
	}
	if sink.fetchEvents[0].retryCount != 3 {
		t.Errorf("expected retry count 3, got %d", sink.fetchEvents[0].retryCount)
	}
}

func TestHtmlFetcher_Fetch_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sink := &mockMetadataSink{}
	f := fetcher.NewHtmlFetcher(sink, server.Client())

	_, err := f.Fetch(context.Background(), fetchParam(t, server.URL), createTestRetryParam(2))

	var retryErr *retry.RetryError
	if !errors.As(err, &retryErr) {
		t.Fatalf("expected RetryError, got %T: %v", err, err)
	}
	if len(sink.errorEvents) != 1 || sink.errorEvents[0].cause != metadata.CauseRetryFailure {
		t.Errorf("expected one retry failure event, got %+v", sink.errorEvents)
	}
	if sink.fetchEvents[0].retryCount != 2 {
		t.Errorf("expected 2 attempts recorded, got %d", sink.fetchEvents[0].retryCount)
	}
}

func TestHtmlFetcher_Fetch_NonRetryableFailures(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCause fetcher.FetchErrorCause
		wantMeta  metadata.ErrorCause
	}{
		{
			name: "non-html content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"message": "not html"}`))
			},
			wantCause: fetcher.ErrCauseContentTypeInvalid,
			wantMeta:  metadata.CauseContentInvalid,
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			wantCause: fetcher.ErrCauseRequestPageForbidden,
			wantMeta:  metadata.CausePolicyDisallow,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantCause: fetcher.ErrCauseRequestClientError,
			wantMeta:  metadata.CauseUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			}))
			defer server.Close()

			sink := &mockMetadataSink{}
			f := fetcher.NewHtmlFetcher(sink, server.Client())

			_, err := f.Fetch(context.Background(), fetchParam(t, server.URL), createTestRetryParam(3))

			var fetchErr *fetcher.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected FetchError, got %T: %v", err, err)
			}
			if fetchErr.Cause != tt.wantCause {
				t.Errorf("expected cause %q, got %q", tt.wantCause, fetchErr.Cause)
			}
			if atomic.LoadInt32(&calls) != 1 {
				t.Errorf("expected a single request, got %d", calls)
			}
			if len(sink.errorEvents) != 1 || sink.errorEvents[0].cause != tt.wantMeta {
				t.Errorf("unexpected error events: %+v", sink.errorEvents)
			}
			if sink.errorEvents[0].packageName != "fetcher" {
				t.Errorf("expected package fetcher, got %s", sink.errorEvents[0].packageName)
			}
		})
	}
}

func TestHtmlFetcher_Fetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<p>late</p>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fetcher.NewHtmlFetcher(&mockMetadataSink{}, server.Client())
	_, err := f.Fetch(ctx, fetchParam(t, server.URL), createTestRetryParam(3))

	var fetchErr *fetcher.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fetchErr.Retryable {
		t.Errorf("a cancelled request must not be retryable")
	}
}

func TestHtmlFetcher_NilClientUsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xhtml+xml")
		w.Write([]byte("<p>x</p>"))
	}))
	defer server.Close()

	f := fetcher.NewHtmlFetcher(metadata.NoopSink{}, nil)
	result, err := f.Fetch(context.Background(), fetchParam(t, server.URL), createTestRetryParam(1))

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(result.Body()) != "<p>x</p>" {
		t.Errorf("unexpected body %q", result.Body())
	}
}
