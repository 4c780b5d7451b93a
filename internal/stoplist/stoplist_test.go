package stoplist_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohmanhakim/justext/internal/stoplist"
	"github.com/rohmanhakim/justext/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	names := stoplist.Available()

	assert.Equal(t, []string{"Czech", "Dutch", "English", "French", "German", "Italian", "Portuguese", "Spanish"}, names)
}

func TestLoad_EveryBundledLanguage(t *testing.T) {
	for _, name := range stoplist.Available() {
		t.Run(name, func(t *testing.T) {
			set, err := stoplist.Load(name)
			require.Nil(t, err)
			assert.Greater(t, set.Len(), 50)
			for word := range set {
				assert.Equal(t, strings.ToLower(word), word)
				assert.NotContains(t, word, " ")
			}
		})
	}
}

func TestLoad_IsCaseInsensitive(t *testing.T) {
	lower, err := stoplist.Load("english")
	require.Nil(t, err)
	upper, err := stoplist.Load("ENGLISH")
	require.Nil(t, err)

	assert.Equal(t, lower, upper)
	assert.True(t, lower.Contains("the"))
	assert.True(t, lower.Contains("The"))
	assert.False(t, lower.Contains("boilerplate"))
}

func TestLoad_UnknownLanguage(t *testing.T) {
	for _, name := range []string{"Klingon", "", "../data/english"} {
		_, err := stoplist.Load(name)
		require.NotNil(t, err, name)

		var stoplistErr *stoplist.StoplistError
		require.True(t, errors.As(err, &stoplistErr))
		assert.Equal(t, stoplist.ErrCauseUnknownLanguage, stoplistErr.Cause)
		assert.Equal(t, failure.SeverityFatal, err.Severity())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.txt")
	content := "# custom words\nFoo\n\n  bar  \n#baz\nfoo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	set, err := stoplist.LoadFile(path)

	require.Nil(t, err)
	assert.Equal(t, stoplist.Set{"foo": {}, "bar": {}}, set)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := stoplist.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))

	var stoplistErr *stoplist.StoplistError
	require.True(t, errors.As(err, &stoplistErr))
	assert.Equal(t, stoplist.ErrCauseReadFailure, stoplistErr.Cause)
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\n"), 0o644))

	tests := []struct {
		name     string
		selector string
		contains string
		empty    bool
	}{
		{"none", "None", "", true},
		{"none lowercase", "none", "", true},
		{"bundled", "German", "und", false},
		{"file", path, "alpha", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := stoplist.Resolve(tt.selector)
			require.Nil(t, err)
			if tt.empty {
				assert.Zero(t, set.Len())
				return
			}
			assert.True(t, set.Contains(tt.contains))
		})
	}
}

func TestIsFileSelector(t *testing.T) {
	assert.True(t, stoplist.IsFileSelector("./words"))
	assert.True(t, stoplist.IsFileSelector("words.TXT"))
	assert.True(t, stoplist.IsFileSelector(`C:\lists\words`))
	assert.False(t, stoplist.IsFileSelector("English"))
}
