package vcs

import (
	"fmt"
	"runtime/debug"
)

// Revision reports the commit the binary was built from, suffixed with
// "-dirty" for builds from a modified tree. It is empty when the binary
// carries no VCS stamp, e.g. under go test.
func Revision() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	return revisionFromSettings(buildInfo.Settings)
}

func revisionFromSettings(settings []debug.BuildSetting) string {
	var revision string
	var modified bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		return ""
	}

	if modified {
		return fmt.Sprintf("%s-dirty", revision)
	}

	return revision
}
