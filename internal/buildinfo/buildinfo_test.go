package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short = %q, want dev", got)
	}

	Commit = "abc1234"
	if got := Short(); got != "abc1234" {
		t.Fatalf("Short = %q, want commit", got)
	}

	Version = "v1.0.0-rc.1+build.20261015"
	if got := Short(); len(got) != 16 || got != Version[:16] {
		t.Fatalf("Short = %q, want 16-char version prefix", got)
	}
}
