package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata for davctl. Release builds set it through ldflags in
// cmd/davctl; `go install` builds fall back to the module build info.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetBuildInfo overrides the build metadata. Empty values are ignored.
func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

// BuildVersionString renders "version (commit) date" for `davctl --version`.
func BuildVersionString() string {
	version, commit, date := buildVersion, buildCommit, buildDate
	if info, ok := debug.ReadBuildInfo(); ok {
		version, commit, date = fromBuildInfo(info, version, commit, date)
	}
	return fmt.Sprintf("%s (%s) %s", version, commit, date)
}

// fromBuildInfo fills placeholder values from the embedded module and VCS
// metadata. Values set through SetBuildInfo win.
func fromBuildInfo(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "none" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if date == "unknown" && s.Value != "" {
				date = s.Value
			}
		}
	}
	return version, commit, date
}
