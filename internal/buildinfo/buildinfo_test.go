package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestResolve(t *testing.T) {
	stamped := func(main string, settings ...string) *debug.BuildInfo {
		info := &debug.BuildInfo{Main: debug.Module{Version: main}}
		for i := 0; i+1 < len(settings); i += 2 {
			info.Settings = append(info.Settings, debug.BuildSetting{Key: settings[i], Value: settings[i+1]})
		}
		return info
	}

	tests := []struct {
		name     string
		injected string
		info     *debug.BuildInfo
		want     string
	}{
		{"injected wins", "v1.4.0", stamped("v0.9.0"), "v1.4.0"},
		{"no build info", "dev", nil, "dev"},
		{"empty injected", "", nil, "dev"},
		{"go install version", "dev", stamped("v1.2.3"), "v1.2.3"},
		{"vcs revision", "dev", stamped("(devel)", "vcs.revision", "0123456789abcdef0123"), "devel+0123456789ab"},
		{"short revision", "dev", stamped("(devel)", "vcs.revision", "abc123"), "devel+abc123"},
		{"dirty tree", "", stamped("(devel)", "vcs.revision", "0123456789abcdef", "vcs.modified", "true"), "devel+0123456789ab+dirty"},
		{"clean tree", "dev", stamped("(devel)", "vcs.revision", "abc123", "vcs.modified", "false"), "devel+abc123"},
		{"no vcs stamp", "dev", stamped("(devel)", "GOOS", "linux"), "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.injected, tt.info); got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.injected, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	if got, want := Line("starterkit", "v1.0.0"), "starterkit version v1.0.0 (schema 2)"; got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}
