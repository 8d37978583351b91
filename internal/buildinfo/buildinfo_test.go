package buildinfo

import "testing"

func TestFullIncludesCommitAndDateWhenKnown(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-08-06"
	got := Full()
	want := "v1.2.3 (abc1234, 2026-08-06)"
	if got != want {
		t.Fatalf("Full() = %q, want %q", got, want)
	}
}

func TestFullFallsBackToShortWhenCommitAndDateUnknown(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() { Version, Commit, Date = oldVersion, oldCommit, oldDate }()

	Version, Commit, Date = "dev", "unknown", "unknown"
	if got := Full(); got != "dev" {
		t.Fatalf("Full() = %q, want %q", got, "dev")
	}
}
