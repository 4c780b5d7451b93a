package build

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/rohmanhakim/justext/internal/build.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Banner is the line printed by --version.
func Banner(program string) string {
	return program + " " + FullVersion() + " (built " + BuildTime + ")"
}
