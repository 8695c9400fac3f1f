package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata, set with -ldflags "-X github.com/heartmarshall/budget-engine/internal/app.Version=...".
// Commit and BuildTime fall back to the VCS stamp embedded by the go tool.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion returns the version string reported in logs and /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime, dirty := vcsStamp()
		if commit == "" {
			commit = vcsCommit
			if dirty && commit != "" {
				commit += "-dirty"
			}
		}
		if built == "" {
			built = vcsTime
		}
	}
	return formatVersion(Version, commit, built)
}

func formatVersion(version, commit, built string) string {
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func vcsStamp() (commit, built string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > 12 {
				commit = commit[:12]
			}
		case "vcs.time":
			built = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	return commit, built, dirty
}
