package storage

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/rohmanhakim/justext/pkg/fileutil"
	"github.com/rohmanhakim/justext/pkg/hashutil"
)

/*
Responsibilities
- Persist rendered documents of a batch run
- Ensure deterministic filenames

Output Characteristics
- Flat directory: <outputDir>/<hash of canonical source>.<ext>
- Idempotent writes
- Overwrite-safe reruns
*/

// sourceHashLength is the number of hex characters kept in filenames.
const sourceHashLength = 12

type Sink interface {
	Write(
		outputDir string,
		doc Document,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

var _ Sink = (*LocalSink)(nil)

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, doc, hashAlgo)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, doc.Source()),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		artifactKind(doc.Extension()),
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrSource, doc.Source()),
			metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	sourceHash, err := hashutil.ShortHash([]byte(doc.Identity()), hashAlgo, sourceHashLength)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}
	contentHash, err := hashutil.HashBytes(doc.Content(), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	fullPath := filepath.Join(outputDir, sourceHash+"."+doc.Extension())
	if err := os.WriteFile(fullPath, doc.Content(), 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(sourceHash, fullPath, contentHash), nil
}

func artifactKind(extension string) metadata.ArtifactKind {
	switch extension {
	case "md":
		return metadata.ArtifactMarkdown
	case "json":
		return metadata.ArtifactJSON
	default:
		return metadata.ArtifactText
	}
}
