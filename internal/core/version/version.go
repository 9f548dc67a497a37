// Package version reports the running build. Stamp it with
// -ldflags "-X github.com/benya7/rss3-widget/internal/core/version.version=v0.1.0"
package version

import "runtime/debug"

var (
	service = "rss3-feed-api"
	version = "dev"
	commit  string
	date    string
)

// BuildInfo is what /meta/version and the CLI print
type BuildInfo struct {
	Service string `json:"service"           yaml:"service"`
	Version string `json:"version"           yaml:"version"`
	Commit  string `json:"commit"            yaml:"commit"`
	Date    string `json:"date,omitempty"    yaml:"date,omitempty"`
	Go      string `json:"go,omitempty"      yaml:"go,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Info merges linker stamps with the VCS settings the go tool embeds. Stamps win
func Info() BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if b, ok := readBuildInfo(); ok && b != nil {
		bi.Go = b.GoVersion
		for _, s := range b.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	return bi
}
