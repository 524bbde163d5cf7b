package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a recipe version as it appears in a recipe file name:
// an upstream version optionally followed by a dash and a numeric
// release, e.g. "2.44-1". Upstream versions are compared semver-style
// when they parse as such, falling back to plain string comparison for
// the occasional date-based or otherwise exotic scheme.
type Version struct {
	Upstream string
	Release  int

	raw string
	sv  *semver.Version
}

// ParseVersion parses a recipe version string such as "2.44-1" or "2.44".
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	v := Version{raw: s, Upstream: s}

	if idx := strings.LastIndex(s, "-"); idx > 0 {
		if release, err := strconv.Atoi(s[idx+1:]); err == nil {
			v.Upstream = s[:idx]
			v.Release = release
		}
	}

	// Best effort; comparison falls back to strings when this fails.
	if sv, err := semver.NewVersion(v.Upstream); err == nil {
		v.sv = sv
	}

	return v, nil
}

// String returns the original version string
func (v Version) String() string {
	return v.raw
}

// Compare orders two versions: negative if v < o, zero if equal,
// positive if v > o. The release number breaks upstream ties.
func (v Version) Compare(o Version) int {
	var c int
	if v.sv != nil && o.sv != nil {
		c = v.sv.Compare(o.sv)
	} else {
		c = strings.Compare(v.Upstream, o.Upstream)
	}

	if c != 0 {
		return c
	}
	return v.Release - o.Release
}

// Matches reports whether v satisfies a requested version string. A
// request matches on the full version ("2.44-1") or on the upstream
// version alone ("2.44", selecting any release of it).
func (v Version) Matches(requested string) bool {
	return v.raw == requested || v.Upstream == requested
}

// LatestVersion returns the highest version from candidates that
// matches the requested version, or the highest overall when requested
// is empty. Returns false when nothing matches.
func LatestVersion(candidates []Version, requested string) (Version, bool) {
	var best Version
	found := false

	for _, c := range candidates {
		if requested != "" && !c.Matches(requested) {
			continue
		}
		if !found || c.Compare(best) > 0 {
			best = c
			found = true
		}
	}

	return best, found
}
