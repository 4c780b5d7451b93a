package pipeline

import (
	"time"

	"github.com/rohmanhakim/justext/internal/classifier"
	"github.com/rohmanhakim/justext/internal/config"
	"github.com/rohmanhakim/justext/internal/decoder"
	"github.com/rohmanhakim/justext/internal/extractor"
	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/internal/sanitizer"
	"github.com/rohmanhakim/justext/internal/stoplist"
	"github.com/rohmanhakim/justext/pkg/failure"
)

/*
 Pipeline turns one raw document into classified paragraphs:

	decode -> parse -> preprocess -> make paragraphs -> classify -> revise

 Guarantees:
 - Configuration problems (stoplist, thresholds) surface from New, before
   any document is touched.
 - Decoding is the only per-document failure; once parsing starts the
   document always yields a complete result.
 - A Pipeline holds no per-document state and may serve concurrent calls.
*/

type Pipeline struct {
	metadataSink metadata.MetadataSink
	decoder      decoder.Decoder
	extractor    extractor.DomExtractor
	preprocessor sanitizer.Preprocessor
	stopwords    stoplist.Set
	params       classifier.Params
	decodeParam  decoder.DecodeParam
}

func New(
	metadataSink metadata.MetadataSink,
	stopwords stoplist.Set,
	params classifier.Params,
	preprocessor sanitizer.Preprocessor,
	decodeParam decoder.DecodeParam,
) *Pipeline {
	if preprocessor == nil {
		preprocessor = sanitizer.NewCleaner()
	}
	return &Pipeline{
		metadataSink: metadataSink,
		decoder:      decoder.NewDecoder(metadataSink),
		extractor:    extractor.NewDomExtractor(metadataSink),
		preprocessor: preprocessor,
		stopwords:    stopwords,
		params:       params,
		decodeParam:  decodeParam,
	}
}

// NewFromConfig resolves the stoplist selector and wires the stages.
func NewFromConfig(cfg config.Config, metadataSink metadata.MetadataSink) (*Pipeline, failure.ClassifiedError) {
	stopwords, err := stoplist.Resolve(cfg.Stoplist())
	if err != nil {
		metadataSink.RecordError(
			time.Now(),
			"pipeline",
			"NewFromConfig",
			metadata.CauseConfigInvalid,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrStoplist, cfg.Stoplist()),
			},
		)
		return nil, err
	}
	return New(
		metadataSink,
		stopwords,
		cfg.ClassifierParams(),
		sanitizer.NewCleaner(cfg.KillTags()...),
		cfg.DecodeParam(""),
	), nil
}

func (p *Pipeline) Params() classifier.Params {
	return p.params
}

// Process classifies one loaded document.
func (p *Pipeline) Process(input Input) (Result, failure.ClassifiedError) {
	startTime := time.Now()
	source := input.Source.Name()

	decodeParam := p.decodeParam
	decodeParam.ContentType = input.ContentType
	decoded, err := p.decoder.Decode(source, input.Raw, decodeParam)
	if err != nil {
		return Result{}, err
	}

	root, err := p.extractor.Parse(source, decoded.Text)
	if err != nil {
		return Result{}, err
	}

	paragraphs := Classify(root, p.stopwords, p.params, p.preprocessor)
	result := Result{
		Source:     source,
		Encoding:   decoded.Encoding,
		Paragraphs: paragraphs,
	}

	p.metadataSink.RecordExtraction(metadata.ExtractionEvent{
		Source:     source,
		Encoding:   decoded.Encoding,
		Paragraphs: len(paragraphs),
		Good:       len(result.Good()),
		Duration:   time.Since(startTime),
	})

	return result, nil
}
