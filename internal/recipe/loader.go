package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/aleya-dev/alpaca/internal/shell"
	"github.com/sirupsen/logrus"
)

// Loader extracts the declared metadata fields from a recipe file by
// evaluating it as a shell script and reading one variable per run.
//
// Each field is read in a fresh interpreter that sources the recipe and
// prints the named variable, so recipes with side effects in their
// top-level statements cannot corrupt later fields. Fields are read in
// a fixed order and the first failing field wins, which keeps error
// reporting deterministic.
type Loader struct {
	cfg config.Configuration
}

// NewLoader creates a loader using the given build configuration
func NewLoader(cfg config.Configuration) *Loader {
	return &Loader{cfg: cfg}
}

// Load evaluates the recipe at recipePath for the given atom and
// returns its validated description.
func (l *Loader) Load(ctx context.Context, atom models.Atom, recipePath string) (*models.Description, error) {
	recipePath, err := filepath.Abs(recipePath)
	if err != nil {
		return nil, &models.AlpacaError{Type: models.ErrFileOp, Subject: recipePath, Err: err}
	}

	if _, err := os.Stat(recipePath); err != nil {
		return nil, &models.AlpacaError{
			Type:    models.ErrRecipeExec,
			Subject: recipePath,
			Err:     fmt.Errorf("recipe not found: %w", err),
		}
	}

	logrus.Debugf("Loading package description from %s", recipePath)

	env := Environment(l.cfg, &atom)

	url, err := l.readScalar(ctx, recipePath, "url", env)
	if err != nil {
		return nil, err
	}

	arrays := make(map[string][]string, 6)
	for _, field := range []string{
		"licenses", "dependencies", "build_dependencies",
		"sources", "sha256sums", "package_options",
	} {
		values, err := l.readArray(ctx, recipePath, field, env)
		if err != nil {
			return nil, err
		}
		arrays[field] = values
	}

	return models.NewDescription(atom, recipePath, url,
		arrays["licenses"], arrays["dependencies"], arrays["build_dependencies"],
		arrays["sources"], arrays["sha256sums"], arrays["package_options"])
}

// ProbeIdentity reads the name, version and release variables from a
// recipe file so that a bare recipe path can be built without knowing
// its atom up front. The identity variables themselves are not part of
// the environment during this early read.
func (l *Loader) ProbeIdentity(ctx context.Context, recipePath string) (models.Atom, error) {
	env := Environment(l.cfg, nil)

	var atom models.Atom
	for _, field := range []struct {
		name string
		dest *string
	}{
		{"name", &atom.Name},
		{"version", &atom.Version},
		{"release", &atom.Release},
	} {
		value, err := l.readScalar(ctx, recipePath, field.name, env)
		if err != nil {
			return models.Atom{}, err
		}
		if value == "" {
			return models.Atom{}, &models.AlpacaError{
				Type:    models.ErrRecipeExec,
				Subject: field.name,
				Err:     fmt.Errorf("recipe %s does not define %q", recipePath, field.name),
			}
		}
		*field.dest = value
	}

	return atom, nil
}

func (l *Loader) readScalar(ctx context.Context, recipePath, field string, env map[string]string) (string, error) {
	out, err := l.readVariable(ctx, recipePath, fmt.Sprintf("%q", "${"+field+"}"), field, env)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// readArray reads an array variable as its whitespace-joined expansion
// split back into tokens. An undefined or empty array yields an empty
// slice, never a one-element slice holding an empty string.
func (l *Loader) readArray(ctx context.Context, recipePath, field string, env map[string]string) ([]string, error) {
	out, err := l.readVariable(ctx, recipePath, fmt.Sprintf("%q", "${"+field+"[@]}"), field, env)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

func (l *Loader) readVariable(ctx context.Context, recipePath, ref, field string, env map[string]string) (string, error) {
	script := fmt.Sprintf("source %s\nprintf '%%s\\n' %s\n", shell.Quote(recipePath), ref)

	out, err := shell.Capture(ctx, script, shell.Options{
		Dir: filepath.Dir(recipePath),
		Env: env,
	})
	if err != nil {
		status, ok := shell.ExitStatus(err)
		if !ok {
			status = -1
		}
		return "", &models.AlpacaError{
			Type:    models.ErrRecipeExec,
			Subject: field,
			Err:     fmt.Errorf("recipe %s failed with exit status %d: %w", recipePath, status, err),
		}
	}

	return out, nil
}
