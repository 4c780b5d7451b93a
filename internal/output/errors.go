package output

import (
	"fmt"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
)

type OutputErrorCause string

const (
	ErrCauseUnknownFormat     OutputErrorCause = "unknown format"
	ErrCauseConversionFailure OutputErrorCause = "conversion failure"
	ErrCauseWriteFailure      OutputErrorCause = "write failure"
)

type OutputError struct {
	Message   string
	Retryable bool
	Cause     OutputErrorCause
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output error: %s: %s", e.Cause, e.Message)
}

func (e *OutputError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapOutputErrorToMetadataCause maps output-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapOutputErrorToMetadataCause(err *OutputError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnknownFormat:
		return metadata.CauseConfigInvalid
	case ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	case ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
