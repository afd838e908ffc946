// Package version carries build metadata injected with -ldflags.
package version

import "runtime/debug"

// Build metadata. Overridden at link time, e.g.
// -ldflags "-X github.com/S74nk0/nhm-crowdin-parser/pkg/version.Version=v1.0.0".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills Version and Commit from the module build info when
// they were not set at link time.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "none" {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Commit = setting.Value
		}
	}
}

// String returns a one-line description of the build.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
