package version

import (
	"fmt"
	"strings"
)

var (
	// GitCommit and GitDescribe are filled in by the compiler via
	// -ldflags at release time.
	GitCommit   string
	GitDescribe string

	Version = "0.1.0"

	// VersionPrerelease marks non-release builds. A release build
	// sets this to "".
	VersionPrerelease = "dev"
)

// GetHumanVersion composes the parts of the version in a way that's
// suitable for displaying to humans.
func GetHumanVersion() string {
	version := Version
	if GitDescribe != "" {
		version = GitDescribe
	}

	release := VersionPrerelease
	if GitDescribe == "" && release == "" {
		release = "dev"
	}

	if release != "" {
		if !strings.HasSuffix(version, "-"+release) {
			version += fmt.Sprintf("-%s", release)
		}
		if GitCommit != "" {
			version += fmt.Sprintf(" (%s)", GitCommit)
		}
	}

	// Strip off any single quotes added by the git information.
	return strings.ReplaceAll(version, "'", "")
}
