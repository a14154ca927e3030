package publish

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Bump is a version increment understood by `npm version`.
type Bump string

const (
	BumpPatch      Bump = "patch"
	BumpMinor      Bump = "minor"
	BumpMajor      Bump = "major"
	BumpPrerelease Bump = "prerelease"
)

// Bumps lists the increments offered when a version is already published.
var Bumps = []Bump{BumpPatch, BumpMinor, BumpMajor, BumpPrerelease}

// ParseBump validates a bump name.
func ParseBump(s string) (Bump, error) {
	for _, b := range Bumps {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown version bump %q (want patch, minor, major or prerelease)", s)
}

// DistTagLatest and DistTagNext are the npm channels releases go to.
const (
	DistTagLatest = "latest"
	DistTagNext   = "next"
)

// NextVersion computes the version `npm version <bump>` would produce.
// Build metadata is always dropped.
//
//	patch:      1.2.3 → 1.2.4,  1.2.4-0 → 1.2.4
//	minor:      1.2.3 → 1.3.0,  1.3.0-0 → 1.3.0
//	major:      1.2.3 → 2.0.0,  2.0.0-0 → 2.0.0
//	prerelease: 1.2.3 → 1.2.4-0, 1.2.4-beta.1 → 1.2.4-beta.2, 1.2.4-beta → 1.2.4-beta.0
func NextVersion(current string, bump Bump) (string, error) {
	v, err := parseSemver(current)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", current, err)
	}

	major, minor, patch := v.Major(), v.Minor(), v.Patch()
	pre := v.Prerelease()

	switch bump {
	case BumpPatch:
		if pre == "" {
			patch++
		}
	case BumpMinor:
		if pre == "" || patch != 0 {
			minor++
			patch = 0
		}
	case BumpMajor:
		if pre == "" || minor != 0 || patch != 0 {
			major++
			minor, patch = 0, 0
		}
	case BumpPrerelease:
		next := nextPrerelease(pre)
		if pre == "" {
			patch++
		}
		return semver.New(major, minor, patch, next, "").String(), nil
	default:
		return "", fmt.Errorf("unknown version bump %q", bump)
	}

	return semver.New(major, minor, patch, "", "").String(), nil
}

// nextPrerelease increments the last numeric identifier of pre, appending
// ".0" when there is none.
func nextPrerelease(pre string) string {
	if pre == "" {
		return "0"
	}
	parts := strings.Split(pre, ".")
	last := parts[len(parts)-1]
	if n, err := strconv.ParseUint(last, 10, 64); err == nil {
		parts[len(parts)-1] = strconv.FormatUint(n+1, 10)
		return strings.Join(parts, ".")
	}
	return pre + ".0"
}

// IsPrerelease reports whether version carries a prerelease part.
func IsPrerelease(version string) (bool, error) {
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v.Prerelease() != "", nil
}

// DistTag returns the npm dist-tag a version is published under: prereleases
// go to "next", everything else to "latest".
func DistTag(version string) (string, error) {
	pre, err := IsPrerelease(version)
	if err != nil {
		return "", err
	}
	if pre {
		return DistTagNext, nil
	}
	return DistTagLatest, nil
}

// TagName returns the git tag for a version ("v1.2.3").
func TagName(version string) string {
	return "v" + strings.TrimPrefix(version, "v")
}

// parseSemver strips a leading "v" and parses strictly.
func parseSemver(version string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
}
