package models

import (
	"fmt"
	"strings"
)

// Atom identifies a package: name, upstream version and release (build)
// number. Its canonical string form is "name-version-release", e.g.
// "binutils-2.44-1".
type Atom struct {
	Name    string
	Version string
	Release string
}

// String returns the canonical atom string
func (a Atom) String() string {
	return fmt.Sprintf("%s-%s-%s", a.Name, a.Version, a.Release)
}

// ParseAtom parses a canonical atom string. The version and release are
// the last two dash-separated segments; the name may itself contain
// dashes (e.g. "gcc-libs-14.2.0-2").
func ParseAtom(s string) (Atom, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Atom{}, &AlpacaError{
			Type:    ErrInvalidConfig,
			Subject: s,
			Err:     fmt.Errorf("invalid atom, expected name-version-release"),
		}
	}

	version := parts[len(parts)-2]
	release := parts[len(parts)-1]
	name := strings.Join(parts[:len(parts)-2], "-")

	if name == "" || version == "" || release == "" {
		return Atom{}, &AlpacaError{
			Type:    ErrInvalidConfig,
			Subject: s,
			Err:     fmt.Errorf("invalid atom, empty name, version or release"),
		}
	}

	return Atom{Name: name, Version: version, Release: release}, nil
}
