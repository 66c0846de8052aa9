package main

import (
	"github.com/mallexibra-dev/smart-starterkit-sub001/cmd"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/buildinfo"
)

// Version may be set at build time via -ldflags "-X main.Version=...".
var Version = buildinfo.Unset

func main() {
	cmd.SetVersion(buildinfo.Version(Version))
	cmd.Execute()
}
