package repository

import (
	"fmt"
	"strings"

	"github.com/aleya-dev/alpaca/internal/models"
)

// Scheme represents how a repository's contents are obtained
type Scheme int

const (
	SchemeGit Scheme = iota
	SchemeLocal
)

// String returns the string representation of Scheme
func (s Scheme) String() string {
	switch s {
	case SchemeGit:
		return "git"
	case SchemeLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Source is the parsed form of a repository declaration. Declaration
// keeps the original string, which doubles as the cache key for git
// sources. A Source is immutable once parsed.
type Source struct {
	Declaration string
	Scheme      Scheme
	Location    string
}

// ParseSource parses a repository declaration of the form
// "git+<url-or-path>" or "local+<path>". Any other prefix is rejected.
func ParseSource(declaration string) (*Source, error) {
	if location, ok := strings.CutPrefix(declaration, "git+"); ok {
		return &Source{Declaration: declaration, Scheme: SchemeGit, Location: location}, nil
	}

	if location, ok := strings.CutPrefix(declaration, "local+"); ok {
		return &Source{Declaration: declaration, Scheme: SchemeLocal, Location: location}, nil
	}

	return nil, &models.AlpacaError{
		Type:    models.ErrRepoParse,
		Subject: declaration,
		Err:     fmt.Errorf("unsupported repository scheme, expected git+ or local+"),
	}
}

// String returns the original declaration
func (s *Source) String() string {
	return s.Declaration
}
