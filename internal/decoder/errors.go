package decoder

import (
	"fmt"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
)

type DecodeErrorCause string

const (
	ErrCauseUnknownEncoding DecodeErrorCause = "unknown encoding"
	ErrCauseUndecodable     DecodeErrorCause = "undecodable bytes"
)

type DecodeError struct {
	Message   string
	Retryable bool
	Cause     DecodeErrorCause
	Encoding  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s (%s): %s", e.Cause, e.Encoding, e.Message)
}

func (e *DecodeError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapDecodeErrorToMetadataCause maps decoder-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapDecodeErrorToMetadataCause(err *DecodeError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnknownEncoding:
		return metadata.CauseConfigInvalid
	case ErrCauseUndecodable:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
