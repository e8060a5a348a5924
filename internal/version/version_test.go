package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestPopulatedAtInit(t *testing.T) {
	if Version == "" {
		t.Error("Version should never be empty after init")
	}
	if Commit == "" {
		t.Error("Commit should never be empty after init")
	}
}

func TestFull(t *testing.T) {
	got := Full()
	if !strings.HasPrefix(got, Version) || !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Full() = %q", got)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestFromSettings(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = savedVersion, savedCommit })

	tests := []struct {
		name        string
		settings    map[string]string
		wantVersion string
		wantCommit  string
	}{
		{
			name: "clean checkout",
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2024-01-15T10:00:00Z",
			},
			wantVersion: "dev-20240115",
			wantCommit:  "0123456",
		},
		{
			name: "modified tree",
			settings: map[string]string{
				"vcs.revision": "abc",
				"vcs.modified": "true",
			},
			wantCommit: "abc-dirty",
		},
		{name: "no vcs stamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = "", ""
			var settings []debug.BuildSetting
			for k, v := range tt.settings {
				settings = append(settings, debug.BuildSetting{Key: k, Value: v})
			}

			fromSettings(settings)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("got version %q commit %q, want %q %q", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}
