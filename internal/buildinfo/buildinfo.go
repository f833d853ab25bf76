package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/ellytic/onboard/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("onboard %s (commit=%s, date=%s)", version(), Commit, Date)
}

// version falls back to the module version for `go install` builds.
func version() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
