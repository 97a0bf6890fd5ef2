package version

import (
	"strings"
	"testing"
)

func TestNew_UsesDefaults(t *testing.T) {
	info := New()
	if info.Version != DefaultVersion || info.ReleaseVersion != DefaultReleaseVersion {
		t.Errorf("unexpected defaults: %+v", info)
	}
	if info.String() != DefaultVersion {
		t.Errorf("String() = %q, want %q", info.String(), DefaultVersion)
	}
}

func TestFull(t *testing.T) {
	info := &Info{Version: "staffdb v1.2.0-abc1234", ReleaseVersion: "1.2.0", BuildDate: "2026-01-01", GitCommit: "abc1234"}
	full := info.Full()
	for _, want := range []string{"staffdb v1.2.0-abc1234", "Version:    1.2.0", "Git Commit: abc1234", GoVersion()} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q:\n%s", want, full)
		}
	}
}

func TestMap(t *testing.T) {
	m := New().Map()
	for _, key := range []string{"version", "release_version", "build_date", "git_commit", "go_version"} {
		if _, ok := m[key]; !ok {
			t.Errorf("Map() missing key %q", key)
		}
	}
}
