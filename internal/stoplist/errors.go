package stoplist

import (
	"fmt"

	"github.com/rohmanhakim/justext/pkg/failure"
)

type StoplistErrorCause string

const (
	ErrCauseUnknownLanguage StoplistErrorCause = "unknown language"
	ErrCauseReadFailure     StoplistErrorCause = "cannot read stoplist"
)

type StoplistError struct {
	Message   string
	Retryable bool
	Cause     StoplistErrorCause
}

func (e *StoplistError) Error() string {
	return fmt.Sprintf("stoplist error: %s: %s", e.Cause, e.Message)
}

func (e *StoplistError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
