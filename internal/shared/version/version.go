// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is stamped at build time:
//
//	go build -ldflags "-X apmdigest/internal/shared/version.Version=1.4.0" ./cmd/apmdigest
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns Version in canonical semver form ("1.4" -> "v1.4.0").
// Builds that are not stamped with a release version report the raw value.
func String() string {
	return Canonical(Version)
}

// Canonical normalizes v, returning it unchanged when it is not valid semver.
func Canonical(v string) string {
	n := Normalize(v)
	if !semver.IsValid(n) {
		return v
	}
	return semver.Canonical(n)
}
