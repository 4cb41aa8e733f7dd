package version

import "testing"

func TestFingerprintFallsBackToVersionWithNoCommit(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "1.2.3"
	GitCommit = ""

	if got := Fingerprint(); got != "1.2.3" {
		t.Fatalf("Fingerprint() = %q, want %q", got, "1.2.3")
	}
}

func TestFingerprintAppendsShortCommitHash(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "1.2.3"
	GitCommit = "abcdef1234567890"

	want := "1.2.3+abcdef12"
	if got := Fingerprint(); got != want {
		t.Fatalf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprintDoesNotTruncateShortHashes(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "0.1.0-dev"
	GitCommit = "abc123"

	want := "0.1.0-dev+abc123"
	if got := Fingerprint(); got != want {
		t.Fatalf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestVersionAndGitMessageAreOverridable(t *testing.T) {
	origVersion, origMessage := Version, GitMessage
	defer func() { Version, GitMessage = origVersion, origMessage }()

	Version = "2.0.0"
	GitMessage = "release cut"

	if Version != "2.0.0" || GitMessage != "release cut" {
		t.Fatalf("override did not stick: Version=%q GitMessage=%q", Version, GitMessage)
	}
}
