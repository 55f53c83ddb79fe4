// Package version reports which textmerger build is running.
//
// Release builds stamp the values with -ldflags:
//
//	go build -ldflags "-X textmerger/pkg/version.Version=0.4.0 -X textmerger/pkg/version.Commit=abcdefg"
//
// Anything left unstamped falls back to the VCS settings the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// AppName is the program name used in logs and version output.
const AppName = "textmerger"

var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version  string
	Revision string // empty when unknown
	Dirty    bool   // built from a modified working tree
	Time     string // empty when unknown
	Go       string
	Platform string
}

// Get resolves the build description from the stamped values and the embedded build info.
func Get() Build {
	b := Build{
		Version:  Version,
		Revision: Commit,
		Time:     BuildTime,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		b.fill(info)
	}
	return b
}

// fill copies what ldflags did not set from the toolchain's build info.
func (b *Build) fill(info *debug.BuildInfo) {
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = strings.TrimPrefix(info.Main.Version, "v")
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Revision == "" {
				b.Revision = s.Value
			}
		case "vcs.time":
			if b.Time == "" {
				b.Time = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
}

// Short returns the bare version number.
func (b Build) Short() string {
	return b.Version
}

// String renders the build on one line, omitting what is unknown:
//
//	textmerger version 0.4.0 (abcdefg, dirty) built 2026-10-19T15:04:05Z go1.24.1 linux/amd64
func (b Build) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s version %s", AppName, b.Version)

	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if b.Dirty {
			rev += ", dirty"
		}
		fmt.Fprintf(&sb, " (%s)", rev)
	}
	if b.Time != "" {
		fmt.Fprintf(&sb, " built %s", b.Time)
	}

	fmt.Fprintf(&sb, " %s %s", b.Go, b.Platform)
	return sb.String()
}
