package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/stretchr/testify/assert"
)

type stubError struct {
	severity failure.Severity
}

func (s *stubError) Error() string {
	return "stub"
}

func (s *stubError) Severity() failure.Severity {
	return s.severity
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "fatal classified", err: &stubError{severity: failure.SeverityFatal}, expected: true},
		{name: "recoverable classified", err: &stubError{severity: failure.SeverityRecoverable}, expected: false},
		{name: "wrapped recoverable", err: fmt.Errorf("wrap: %w", &stubError{severity: failure.SeverityRecoverable}), expected: false},
		{name: "plain error", err: errors.New("boom"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.IsFatal(tt.err))
		})
	}
}
