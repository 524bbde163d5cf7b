package models

import "fmt"

// Description is the validated metadata extracted from a recipe file.
// Sources and SHA256Sums correspond by index: SHA256Sums[i] is the
// expected digest of Sources[i].
type Description struct {
	Atom              Atom
	URL               string
	Licenses          []string
	Dependencies      []string
	BuildDependencies []string
	Sources           []string
	SHA256Sums        []string
	AvailableOptions  []string
	RecipePath        string
}

// NewDescription constructs a Description and validates the
// source/checksum index correspondence. A length mismatch is a hard
// error; it is never padded or truncated.
func NewDescription(atom Atom, recipePath, url string,
	licenses, dependencies, buildDependencies, sources, sha256sums, options []string) (*Description, error) {

	if len(sources) != len(sha256sums) {
		return nil, &AlpacaError{
			Type:    ErrChecksumMismatch,
			Subject: atom.String(),
			Err: fmt.Errorf("number of sources (%d) does not match number of sha256sums (%d)",
				len(sources), len(sha256sums)),
		}
	}

	return &Description{
		Atom:              atom,
		URL:               url,
		Licenses:          licenses,
		Dependencies:      dependencies,
		BuildDependencies: buildDependencies,
		Sources:           sources,
		SHA256Sums:        sha256sums,
		AvailableOptions:  options,
		RecipePath:        recipePath,
	}, nil
}
