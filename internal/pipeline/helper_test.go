package pipeline_test

import (
	"context"
	"time"

	"github.com/rohmanhakim/justext/internal/fetcher"
	"github.com/rohmanhakim/justext/internal/storage"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/hashutil"
	"github.com/rohmanhakim/justext/pkg/retry"
	"github.com/stretchr/testify/mock"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(
	ctx context.Context,
	fetchParam fetcher.FetchParam,
	retryParam retry.RetryParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, fetchParam, retryParam)
	result := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

// rateLimiterMock is a testify mock for the RateLimiter
type rateLimiterMock struct {
	mock.Mock
}

func newRateLimiterMock() *rateLimiterMock {
	m := new(rateLimiterMock)
	m.On("Wait", mock.Anything, mock.Anything).Return(nil)
	m.On("MarkLastFetchAsNow", mock.Anything).Return()
	m.On("Backoff", mock.Anything).Return()
	m.On("ResetBackoff", mock.Anything).Return()
	m.On("ResolveDelay", mock.Anything).Return(time.Duration(0))
	return m
}

func (m *rateLimiterMock) Backoff(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) ResetBackoff(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) MarkLastFetchAsNow(host string) {
	m.Called(host)
}

func (m *rateLimiterMock) ResolveDelay(host string) time.Duration {
	args := m.Called(host)
	return args.Get(0).(time.Duration)
}

func (m *rateLimiterMock) Wait(ctx context.Context, host string) error {
	args := m.Called(ctx, host)
	return args.Error(0)
}

// storageMock is a testify mock for the storage Sink
type storageMock struct {
	mock.Mock
}

func (s *storageMock) Write(
	outputDir string,
	doc storage.Document,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError) {
	args := s.Called(outputDir, doc, hashAlgo)
	res := args.Get(0).(storage.WriteResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return res, err
}
