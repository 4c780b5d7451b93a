package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/justext/pkg/failure"
)

// StdinPath is the conventional path meaning "read standard input".
const StdinPath = "-"

// GetFileExtension extracts the file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      fullDir,
		}
	}
	return nil
}

// ReadInput reads a whole file, or stdin when path is empty or StdinPath.
func ReadInput(path string, stdin io.Reader) ([]byte, failure.ClassifiedError) {
	if path == "" || path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &FileError{
				Message:   fmt.Sprintf("%v", err),
				Retryable: false,
				Cause:     ErrCauseReadError,
				Path:      StdinPath,
			}
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCauseReadError,
			Path:      path,
		}
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories first.
func WriteFile(path string, data []byte) failure.ClassifiedError {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      path,
		}
	}
	return nil
}
