package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/sirupsen/logrus"
)

// Cache maps repository sources to local directories under a cache root
// and keeps those directories synchronized with their remotes.
//
// Git sources are cached under a directory named by the sha256 digest of
// the full declaration string. Hashing the declaration rather than the
// location keeps "git+X" and "local+X" from ever colliding. Local
// sources are never cached; their location is used directly.
//
// Concurrent updates against the same source must be serialized by the
// caller; updates to distinct sources are independent.
type Cache struct {
	root string
}

// NewCache creates a cache rooted at the given directory
func NewCache(root string) *Cache {
	return &Cache{root: root}
}

// Path resolves the local directory for a source. This is a pure
// lookup: it performs no I/O and never triggers an update, so it stays
// usable offline. Call Update first when freshness matters.
func (c *Cache) Path(src *Source) string {
	if src.Scheme == SchemeLocal {
		return src.Location
	}

	digest := sha256.Sum256([]byte(src.Declaration))
	return filepath.Join(c.root, hex.EncodeToString(digest[:]))
}

// EnsureRoot creates the cache root directory if it does not exist
func (c *Cache) EnsureRoot() error {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return &models.AlpacaError{Type: models.ErrFileOp, Subject: c.root, Err: err}
	}
	return nil
}

// Update brings the cache entry for a source up to date. Local sources
// are assumed current and skipped. Git sources are cloned on first use
// and fast-forwarded afterwards; a dirty working tree or diverged
// history fails without touching the directory. Nothing is retried.
func (c *Cache) Update(ctx context.Context, src *Source) error {
	if src.Scheme == SchemeLocal {
		logrus.Infof("Skipping cache update for local repository %s", src.Location)
		return nil
	}

	path := c.Path(src)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.clone(ctx, src, path)
	}

	dirty, err := gitIsDirty(ctx, path)
	if err != nil {
		return &models.AlpacaError{Type: models.ErrUpdateFailed, Subject: src.Declaration, Err: err}
	}

	if dirty {
		return &models.AlpacaError{
			Type:    models.ErrLocalChanges,
			Subject: src.Declaration,
			Err: fmt.Errorf("local changes detected in %s; "+
				"changes in the repository cache are not supported, please remove them", path),
		}
	}

	logrus.Debugf("Updating repository %s in %s", src.Location, path)

	if err := gitPullFFOnly(ctx, path); err != nil {
		return &models.AlpacaError{Type: models.ErrUpdateFailed, Subject: src.Declaration, Err: err}
	}

	return nil
}

// Reset removes the cache entry for a git source and clones it afresh
func (c *Cache) Reset(ctx context.Context, src *Source) error {
	if src.Scheme != SchemeGit {
		return nil
	}

	path := c.Path(src)
	if err := os.RemoveAll(path); err != nil {
		return &models.AlpacaError{Type: models.ErrFileOp, Subject: path, Err: err}
	}

	return c.clone(ctx, src, path)
}

func (c *Cache) clone(ctx context.Context, src *Source, path string) error {
	logrus.Infof("Cloning repository %s into %s", src.Location, path)

	if err := gitClone(ctx, src.Location, path); err != nil {
		// A failed clone may leave a partial directory behind; remove
		// it so the next attempt starts from a clean slate.
		if rmErr := os.RemoveAll(path); rmErr != nil {
			logrus.Warnf("Failed to clean up partial clone at %s: %v", path, rmErr)
		}
		return &models.AlpacaError{Type: models.ErrCloneFailed, Subject: src.Location, Err: err}
	}

	return nil
}
