// Package buildinfo resolves the version string reported by the starterkit
// and starterkit-api binaries.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
)

// Unset is the placeholder version linked into development builds.
const Unset = "dev"

// Version returns injected when the build set one with -ldflags.
// Otherwise it falls back to the module version recorded by go install,
// then to "devel+<revision>[+dirty]" from the VCS stamp.
func Version(injected string) string {
	info, _ := debug.ReadBuildInfo()
	return resolve(injected, info)
}

// Line renders "<name> version <v> (schema N)", where N is the newest
// catalog schema the binary migrates to.
func Line(name, version string) string {
	line := fmt.Sprintf("%s version %s", name, version)
	if n, err := db.BundledSchemaVersion(); err == nil {
		line += fmt.Sprintf(" (schema %d)", n)
	}
	return line
}

func resolve(injected string, info *debug.BuildInfo) string {
	if injected != "" && injected != Unset {
		return injected
	}
	if info == nil {
		return fallback(injected)
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return fallback(injected)
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	v := "devel+" + rev
	if settings["vcs.modified"] == "true" {
		v += "+dirty"
	}
	return v
}

func fallback(injected string) string {
	if strings.TrimSpace(injected) == "" {
		return Unset
	}
	return injected
}
