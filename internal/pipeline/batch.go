package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rohmanhakim/justext/internal/output"
	"github.com/rohmanhakim/justext/internal/storage"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/hashutil"
	"golang.org/x/sync/errgroup"
)

/*
 BatchRunner processes many sources concurrently.

 - At most `concurrency` documents are in flight.
 - Documents are independent: one failure never stops the others.
 - Results are reported in input order whatever the completion order.
*/

type BatchRunner struct {
	pipeline    *Pipeline
	loader      *Loader
	renderer    output.Renderer
	sink        storage.Sink
	format      output.Format
	outputDir   string
	hashAlgo    hashutil.HashAlgo
	concurrency int
}

func NewBatchRunner(
	pipeline *Pipeline,
	loader *Loader,
	renderer output.Renderer,
	sink storage.Sink,
	format output.Format,
	outputDir string,
	hashAlgo hashutil.HashAlgo,
	concurrency int,
) *BatchRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchRunner{
		pipeline:    pipeline,
		loader:      loader,
		renderer:    renderer,
		sink:        sink,
		format:      format,
		outputDir:   outputDir,
		hashAlgo:    hashAlgo,
		concurrency: concurrency,
	}
}

type BatchItem struct {
	Source string
	Write  storage.WriteResult
	Err    failure.ClassifiedError
}

type BatchReport struct {
	Items []BatchItem
}

func (r BatchReport) Failed() []BatchItem {
	var failed []BatchItem
	for _, item := range r.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Err summarizes failed documents, or returns nil when all succeeded.
func (r BatchReport) Err() failure.ClassifiedError {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, len(failed))
	for i, item := range failed {
		names[i] = item.Source
	}
	return &PipelineError{
		Message:   fmt.Sprintf("%d of %d: %s", len(failed), len(r.Items), strings.Join(names, ", ")),
		Retryable: false,
		Cause:     ErrCauseBatchFailures,
	}
}

func (b *BatchRunner) Run(ctx context.Context, sources []Source) BatchReport {
	items := make([]BatchItem, len(sources))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, source := range sources {
		g.Go(func() error {
			items[i] = b.runOne(ctx, source)
			return nil
		})
	}
	_ = g.Wait()

	return BatchReport{Items: items}
}

func (b *BatchRunner) runOne(ctx context.Context, source Source) BatchItem {
	item := BatchItem{Source: source.Name()}

	if err := ctx.Err(); err != nil {
		item.Err = &PipelineError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCancelled,
		}
		return item
	}

	input, err := b.loader.Load(ctx, source)
	if err != nil {
		item.Err = err
		return item
	}

	result, err := b.pipeline.Process(input)
	if err != nil {
		item.Err = err
		return item
	}

	content, err := b.renderer.Bytes(b.format, result.Paragraphs)
	if err != nil {
		item.Err = err
		return item
	}

	doc := storage.NewDocument(source.Name(), source.Identity(), content, b.format.Extension())
	writeResult, err := b.sink.Write(b.outputDir, doc, b.hashAlgo)
	if err != nil {
		item.Err = err
		return item
	}
	item.Write = writeResult
	return item
}
