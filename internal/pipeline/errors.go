package pipeline

import (
	"fmt"

	"github.com/rohmanhakim/justext/pkg/failure"
)

type PipelineErrorCause string

const (
	ErrCauseCancelled     PipelineErrorCause = "cancelled"
	ErrCauseBatchFailures PipelineErrorCause = "documents failed"
)

type PipelineError struct {
	Message   string
	Retryable bool
	Cause     PipelineErrorCause
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error: %s: %s", e.Cause, e.Message)
}

func (e *PipelineError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
