package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/sirupsen/logrus"
)

// Finder locates recipe files in the configured repositories. A recipe
// for package "name" with version "2.44-1" lives at
// <repository>/<stream>/name/name-2.44-1.recipe.
type Finder struct {
	cfg     config.Configuration
	cache   *Cache
	sources []*Source
}

// NewFinder creates a finder over the configured repositories. The
// repository declarations from the configuration are parsed eagerly so
// that a malformed declaration fails here rather than mid-search.
func NewFinder(cfg config.Configuration, cache *Cache) (*Finder, error) {
	if len(cfg.Repositories) == 0 {
		return nil, &models.AlpacaError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("no repositories configured"),
		}
	}

	sources := make([]*Source, 0, len(cfg.Repositories))
	for _, declaration := range cfg.Repositories {
		src, err := ParseSource(declaration)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	return &Finder{cfg: cfg, cache: cache, sources: sources}, nil
}

type candidate struct {
	version models.Version
	path    string
}

// FindRecipe resolves a package specifier to a recipe file path. The
// specifier is either a direct path to a recipe file, a package name,
// or "<name>/<version>" to request a specific version. The highest
// matching version wins.
func (f *Finder) FindRecipe(spec string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("no package name given")
	}

	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		logrus.Debugf("Package specifier %s is a direct recipe path", spec)
		return filepath.Abs(spec)
	}

	name := spec
	requested := ""

	parts := strings.Split(spec, "/")
	switch len(parts) {
	case 1:
	case 2:
		name, requested = parts[0], parts[1]
	default:
		return "", fmt.Errorf("invalid package specifier %q, expected <name> or <name>/<version>", spec)
	}

	candidates := f.collect(name)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no recipes found for package %q", name)
	}

	versions := make([]models.Version, len(candidates))
	for i, c := range candidates {
		versions[i] = c.version
	}

	version, ok := models.LatestVersion(versions, requested)
	if !ok {
		return "", fmt.Errorf("no matching version for package %q with requested version %q", name, requested)
	}

	for _, c := range candidates {
		if c.version == version {
			logrus.Debugf("Found recipe %s for package %q version %s", c.path, name, version)
			return c.path, nil
		}
	}

	return "", fmt.Errorf("no recipes found for package %q", name)
}

func (f *Finder) collect(name string) []candidate {
	var candidates []candidate

	for _, src := range f.sources {
		repoPath := f.cache.Path(src)

		for _, stream := range f.cfg.PackageStreams {
			base := filepath.Join(repoPath, stream, name)

			entries, err := os.ReadDir(base)
			if err != nil {
				continue
			}

			logrus.Debugf("Searching for recipes in %s", base)

			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), config.RecipeFileExtension) {
					continue
				}

				raw := strings.TrimSuffix(entry.Name(), config.RecipeFileExtension)
				if !strings.HasPrefix(raw, name+"-") {
					continue
				}

				version, err := models.ParseVersion(strings.TrimPrefix(raw, name+"-"))
				if err != nil {
					logrus.Warnf("Skipping recipe %s without version information", entry.Name())
					continue
				}

				candidates = append(candidates, candidate{
					version: version,
					path:    filepath.Join(base, entry.Name()),
				})
			}
		}
	}

	return candidates
}
