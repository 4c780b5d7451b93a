package extractor

import (
	"fmt"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
)

type ExtractionErrorCause string

// x/net/html recovers from nearly all malformed markup, so the only
// failure left is a reader error surfacing from the tokenizer.
const (
	ErrCauseNotHTML ExtractionErrorCause = "not html"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
	Source    string
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
	}
	return fmt.Sprintf("extraction error: %s: %s: %s", e.Source, e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// Observational only; never branch on the result.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	if err.Cause == ErrCauseNotHTML {
		return metadata.CauseContentInvalid
	}
	return metadata.CauseUnknown
}
