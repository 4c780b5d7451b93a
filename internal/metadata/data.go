package metadata

import (
	"time"
)

type FetchEvent struct {
	FetchURL    string
	HTTPStatus  int
	Duration    time.Duration
	ContentType string
	RetryCount  int
}

// ExtractionEvent summarizes one classified document.
type ExtractionEvent struct {
	Source     string
	Encoding   string
	Paragraphs int
	Good       int
	Duration   time.Duration
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for retry, continuation, or abort decisions.
	 - Stage packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure
  - Transport or remote availability failure while fetching a --url input.

# CausePolicyDisallow
  - The remote refused the request (403, 429).

# CauseContentInvalid
  - Input was read but could not be processed: undecodable bytes,
    non-HTML responses, unusable documents.

# CauseStorageFailure
  - Failure while reading inputs or persisting outputs.

# CauseConfigInvalid
  - Unknown stoplist, encoding, format or out-of-range threshold.

# CauseRetryFailure
  - Retry attempts were exhausted or cancelled.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseConfigInvalid
	CauseRetryFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseConfigInvalid:
		return "config_invalid"
	case CauseRetryFailure:
		return "retry_failure"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	PackageName string
	Action      string
	Cause       ErrorCause
	ErrorString string
	ObservedAt  time.Time
	Attrs       []Attribute
}

type ArtifactKind string

const (
	ArtifactText     ArtifactKind = "text"
	ArtifactMarkdown ArtifactKind = "markdown"
	ArtifactJSON     ArtifactKind = "json"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL       AttributeKey = "url"
	AttrHost      AttributeKey = "host"
	AttrPath      AttributeKey = "path"
	AttrSource    AttributeKey = "source"
	AttrField     AttributeKey = "field"
	AttrMessage   AttributeKey = "message"
	AttrEncoding  AttributeKey = "encoding"
	AttrStoplist  AttributeKey = "stoplist"
	AttrFormat    AttributeKey = "format"
	AttrWritePath AttributeKey = "write_path"
	AttrHash      AttributeKey = "hash"
)
