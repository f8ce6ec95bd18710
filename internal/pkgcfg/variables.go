package pkgcfg

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	defaultUndefined  = "(undefined)"
	defaultLocalBuild = "(local)"
	mainBranch        = "main"

	// Name is used for path and process naming throughout the engine.
	Name = "pkger"
)

var (
	version   = "" // set via -ldflags at release build time
	stage     = ""
	gitCommit = ""

	rawQuiet   = "false"
	rawDebug   = "false"
	rawVerbose = "false"
)

// Version returns the release version, stripped of a leading "v".
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Stage returns the build's git branch / release stage.
func Stage() string {
	s := strings.TrimSpace(stage)
	if s == "" {
		return defaultUndefined
	}
	return strings.ToLower(s)
}

// GitCommit returns the commit hash the binary was built from.
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Arch returns the build architecture.
func Arch() string {
	return runtime.GOARCH
}

// IsLocal reports whether this is an unreleased, locally built binary.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(stage) == ""
}

// VersionString renders a one-line version summary suitable for `pkger
// version` and startup log lines.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	s := Stage()
	if s == mainBranch {
		s = ""
	} else {
		s = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s]", Version(), s, GitCommit(), Arch())
}
