package version

import (
	"strings"
	"testing"
)

func TestInfoDefaults(t *testing.T) {
	info := Info()

	if info.Version != "dev" {
		t.Errorf("Version = %q, want %q", info.Version, "dev")
	}
	if info.Commit != "unknown" {
		t.Errorf("Commit = %q, want %q", info.Commit, "unknown")
	}
}

func TestStringContainsInjectedValues(t *testing.T) {
	oldCommit, oldDate := BuildCommit, BuildDate
	defer func() { BuildCommit, BuildDate = oldCommit, oldDate }()

	BuildCommit = "abc1234"
	BuildDate = "2026-01-15"

	s := String()
	if !strings.Contains(s, "abc1234") || !strings.Contains(s, "2026-01-15") {
		t.Errorf("String() = %q, missing injected build metadata", s)
	}
}
