package build_test

import (
	"testing"

	"github.com/rohmanhakim/justext/internal/build"
)

func setVersion(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	oldVersion, oldCommit, oldBuildTime := build.Version, build.Commit, build.BuildTime
	t.Cleanup(func() {
		build.Version, build.Commit, build.BuildTime = oldVersion, oldCommit, oldBuildTime
	})
	build.Version, build.Commit, build.BuildTime = version, commit, buildTime
}

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"default values", "dev", "none", "dev+none"},
		{"version with commit", "1.0.0", "abc123", "1.0.0+abc123"},
		{"empty version with commit", "", "abc123", "+abc123"},
		{"version with empty commit", "1.0.0", "", "1.0.0+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVersion(t, tt.version, tt.commit, "unknown")

			got := build.FullVersion()
			if got != tt.want {
				t.Errorf("FullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBanner(t *testing.T) {
	setVersion(t, "3.0.0", "89dece5", "2026-01-02T03:04:05Z")

	want := "justext 3.0.0+89dece5 (built 2026-01-02T03:04:05Z)"
	if got := build.Banner("justext"); got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
}
