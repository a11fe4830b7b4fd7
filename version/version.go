// Package version reports the build identity of primesd.
//
// Release builds stamp the variables below with -ldflags, for example:
//
//	go build -ldflags "-X github.com/kbukum/primekit/version.Version=v1.2.0" ./cmd/primesd
//
// Anything left unset is filled from the module's VCS build settings.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// shortCommit is the length of an abbreviated commit hash.
const shortCommit = 7

// Info is the build identity served by /info.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get assembles the build identity from ldflags and debug.ReadBuildInfo.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fromBuildInfo(bi)
	}
	if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
		info.BuildDate = t
	}
	info.IsRelease = info.Version != "dev" && !info.IsDirty && !strings.Contains(info.Version, "dirty")
	return info
}

func (info *Info) fromBuildInfo(bi *debug.BuildInfo) {
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
	if len(info.GitCommit) > shortCommit {
		info.GitCommit = info.GitCommit[:shortCommit]
	}
}

// Short returns "version-commit", with a -dirty suffix for modified trees.
func (info Info) Short() string {
	if info.GitCommit == "" {
		return info.Version
	}
	s := info.Version + "-" + info.GitCommit
	if info.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns Short followed by the build date when known.
func (info Info) String() string {
	if info.BuildDate.IsZero() {
		return info.Short()
	}
	return fmt.Sprintf("%s (built %s)", info.Short(), info.BuildDate.UTC().Format(time.RFC3339))
}
