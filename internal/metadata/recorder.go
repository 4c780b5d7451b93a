package metadata

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Fetch timings and HTTP status codes for --url inputs
- Per-document paragraph counts
- Written artifacts
- Classified failures

Metadata is write-only.
No component may read metadata to influence extraction decisions.
*/

// MetadataSink is the write-only observability port every stage reports to.
type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		errorString string,
		attrs []Attribute,
	)
	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
	)
	RecordExtraction(event ExtractionEvent)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

/*
Recorder writes metadata events as structured zerolog entries.
Ordering guarantees:
- Events are written in the order a single goroutine records them.
- No global ordering across batch workers is guaranteed.
*/
type Recorder struct {
	runID  string
	logger zerolog.Logger
}

var _ MetadataSink = (*Recorder)(nil)

// NewRecorder tags every event with a fresh run id.
func NewRecorder(logger zerolog.Logger) *Recorder {
	runID := uuid.NewString()
	return &Recorder{
		runID:  runID,
		logger: logger.With().Str("run_id", runID).Logger(),
	}
}

func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	evt := r.logger.Warn().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Stringer("cause", cause).
		Str("error", errorString)
	withAttrs(evt, attrs).Msg("error recorded")
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
	r.logger.Debug().
		Str("url", fetchUrl).
		Int("http_status", httpStatus).
		Dur("duration", duration).
		Str("content_type", contentType).
		Int("retry_count", retryCount).
		Msg("fetch")
}

func (r *Recorder) RecordExtraction(event ExtractionEvent) {
	r.logger.Info().
		Str("source", event.Source).
		Str("encoding", event.Encoding).
		Int("paragraphs", event.Paragraphs).
		Int("good", event.Good).
		Dur("duration", event.Duration).
		Msg("document classified")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	evt := r.logger.Info().
		Str("kind", string(kind)).
		Str("path", path)
	withAttrs(evt, attrs).Msg("artifact written")
}

func withAttrs(evt *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, attr := range attrs {
		evt = evt.Str(string(attr.Key), attr.Value)
	}
	return evt
}

// NoopSink drops every event.
type NoopSink struct{}

var _ MetadataSink = NoopSink{}

func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute) {}

func (NoopSink) RecordFetch(string, int, time.Duration, string, int) {}

func (NoopSink) RecordExtraction(ExtractionEvent) {}

func (NoopSink) RecordArtifact(ArtifactKind, string, []Attribute) {}
