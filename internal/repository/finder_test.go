package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRecipeTree builds a local repository with recipes for binutils
// 2.43-1, 2.44-1 and 2.44-2 in the core stream, and zlib in extra.
func newRecipeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	recipes := map[string]string{
		"core/binutils/binutils-2.43-1.recipe": "name=binutils\nversion=2.43\nrelease=1\n",
		"core/binutils/binutils-2.44-1.recipe": "name=binutils\nversion=2.44\nrelease=1\n",
		"core/binutils/binutils-2.44-2.recipe": "name=binutils\nversion=2.44\nrelease=2\n",
		"extra/zlib/zlib-1.3-1.recipe":         "name=zlib\nversion=1.3\nrelease=1\n",
		"core/binutils/notes.txt":              "not a recipe\n",
	}

	for path, content := range recipes {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}

	return root
}

func newTestFinder(t *testing.T, root string, streams ...string) *Finder {
	t.Helper()

	cfg := config.Configuration{
		Repositories:   []string{"local+" + root},
		PackageStreams: streams,
	}

	finder, err := NewFinder(cfg, NewCache(t.TempDir()))
	require.NoError(t, err)
	return finder
}

func TestFindRecipeLatestVersion(t *testing.T) {
	root := newRecipeTree(t)
	finder := newTestFinder(t, root, "core")

	path, err := finder.FindRecipe("binutils")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "core", "binutils", "binutils-2.44-2.recipe"), path)
}

func TestFindRecipeRequestedVersion(t *testing.T) {
	root := newRecipeTree(t)
	finder := newTestFinder(t, root, "core")

	path, err := finder.FindRecipe("binutils/2.43")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "core", "binutils", "binutils-2.43-1.recipe"), path)

	path, err = finder.FindRecipe("binutils/2.44-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "core", "binutils", "binutils-2.44-1.recipe"), path)

	_, err = finder.FindRecipe("binutils/9.99")
	assert.Error(t, err)
}

func TestFindRecipeStreams(t *testing.T) {
	root := newRecipeTree(t)

	// zlib lives in the extra stream only
	finder := newTestFinder(t, root, "core")
	_, err := finder.FindRecipe("zlib")
	assert.Error(t, err)

	finder = newTestFinder(t, root, "core", "extra")
	path, err := finder.FindRecipe("zlib")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "extra", "zlib", "zlib-1.3-1.recipe"), path)
}

func TestFindRecipeDirectPath(t *testing.T) {
	root := newRecipeTree(t)
	finder := newTestFinder(t, root, "core")

	direct := filepath.Join(root, "extra", "zlib", "zlib-1.3-1.recipe")
	path, err := finder.FindRecipe(direct)
	require.NoError(t, err)
	assert.Equal(t, direct, path)
}

func TestFindRecipeInvalidSpec(t *testing.T) {
	finder := newTestFinder(t, newRecipeTree(t), "core")

	_, err := finder.FindRecipe("")
	assert.Error(t, err)

	_, err = finder.FindRecipe("a/b/c")
	assert.Error(t, err)
}

func TestNewFinderErrors(t *testing.T) {
	_, err := NewFinder(config.Configuration{}, NewCache(t.TempDir()))
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrInvalidConfig))

	cfg := config.Configuration{Repositories: []string{"svn+https://example.test/repo"}}
	_, err = NewFinder(cfg, NewCache(t.TempDir()))
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrRepoParse))
}
