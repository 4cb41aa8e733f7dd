package version

import "github.com/fatih/color"

// Build metadata for the cppmirc binary. GitCommit, GitMessage, and
// BuildDate can be set at build time via -ldflags -X. Version is built
// from colored segments at package initialization, so -X does not
// replace it.

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Fingerprint returns a short tag identifying the build that lowered a
// translation unit, for embedding in a serialized mir.Module's Name so a
// stale .mp file on disk is recognizable at a glance. It falls back to
// Version alone when no commit hash was recorded at build time.
func Fingerprint() string {
	if GitCommit == "" {
		return Version
	}
	hash := GitCommit
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return Version + "+" + hash
}
