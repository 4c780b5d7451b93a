package output

import (
	"bytes"
	"io"
	"time"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/internal/paragraph"
	"github.com/rohmanhakim/justext/pkg/failure"
)

/*
Responsibilities
- Serialize classified paragraphs in one of the supported formats

Rendering is deterministic: identical paragraphs give identical bytes.
*/

type Renderer struct {
	metadataSink metadata.MetadataSink
}

func NewRenderer(metadataSink metadata.MetadataSink) Renderer {
	return Renderer{
		metadataSink: metadataSink,
	}
}

// Render writes paragraphs to w in format.
func (r *Renderer) Render(w io.Writer, format Format, paragraphs []*paragraph.Paragraph) failure.ClassifiedError {
	if err := Write(w, format, paragraphs); err != nil {
		r.metadataSink.RecordError(
			time.Now(),
			"output",
			"Renderer.Render",
			mapOutputErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrFormat, string(format)),
			},
		)
		return err
	}
	return nil
}

// Bytes renders into memory.
func (r *Renderer) Bytes(format Format, paragraphs []*paragraph.Paragraph) ([]byte, failure.ClassifiedError) {
	var buf bytes.Buffer
	if err := r.Render(&buf, format, paragraphs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write is the stateless core of Render.
func Write(w io.Writer, format Format, paragraphs []*paragraph.Paragraph) *OutputError {
	var err error
	switch format {
	case FormatDefault:
		err = writeTagged(w, paragraphs, false)
	case FormatBoilerplate:
		err = writeTagged(w, paragraphs, true)
	case FormatDetailed:
		err = writeDetailed(w, paragraphs)
	case FormatKrdwrd:
		err = writeKrdwrd(w, paragraphs)
	case FormatJSON:
		err = writeJSON(w, paragraphs)
	case FormatMarkdown:
		if convErr := writeMarkdown(w, paragraphs); convErr != nil {
			return &OutputError{
				Message:   convErr.Error(),
				Retryable: false,
				Cause:     ErrCauseConversionFailure,
			}
		}
		return nil
	default:
		return &OutputError{
			Message:   string(format),
			Retryable: false,
			Cause:     ErrCauseUnknownFormat,
		}
	}
	if err != nil {
		return &OutputError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
	}
	return nil
}
