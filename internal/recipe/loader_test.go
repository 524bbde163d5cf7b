package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Configuration {
	return config.Configuration{
		TargetArchitecture: "x86_64",
		TargetPlatform:     "linux",
		CFlags:             "-O2",
	}
}

func testAtom() models.Atom {
	return models.Atom{Name: "hello", Version: "1.0", Release: "1"}
}

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hello-1.0-1.recipe")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRecipe(t, `
name=hello
version=1.0
release=1
url="https://example.org/hello"
licenses=(MIT)
dependencies=(glibc zlib)
build_dependencies=(gcc)
sources=("https://example.org/hello-$package_version.tar.gz")
sha256sums=(0123456789abcdef)
package_options=(static docs)
`)

	loader := NewLoader(testConfig())
	desc, err := loader.Load(context.Background(), testAtom(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/hello", desc.URL)
	assert.Equal(t, []string{"MIT"}, desc.Licenses)
	assert.Equal(t, []string{"glibc", "zlib"}, desc.Dependencies)
	assert.Equal(t, []string{"gcc"}, desc.BuildDependencies)
	assert.Equal(t, []string{"https://example.org/hello-1.0.tar.gz"}, desc.Sources)
	assert.Equal(t, []string{"0123456789abcdef"}, desc.SHA256Sums)
	assert.Equal(t, []string{"static", "docs"}, desc.AvailableOptions)
	assert.Equal(t, path, desc.RecipePath)
	assert.Equal(t, testAtom(), desc.Atom)
}

func TestLoadUndefinedArraysAreEmpty(t *testing.T) {
	path := writeRecipe(t, `
licenses=(MIT)
`)

	loader := NewLoader(testConfig())
	desc, err := loader.Load(context.Background(), testAtom(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"MIT"}, desc.Licenses)

	// Undefined arrays come back empty, never as [""]
	assert.Empty(t, desc.Dependencies)
	assert.Empty(t, desc.BuildDependencies)
	assert.Empty(t, desc.Sources)
	assert.Empty(t, desc.SHA256Sums)
	assert.Empty(t, desc.AvailableOptions)
	assert.Equal(t, "", desc.URL)
}

func TestLoadSourceChecksumMismatch(t *testing.T) {
	path := writeRecipe(t, `
sources=(a.tar.gz b.tar.gz c.tar.gz)
sha256sums=(aaa bbb)
`)

	loader := NewLoader(testConfig())
	_, err := loader.Load(context.Background(), testAtom(), path)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrChecksumMismatch))
	assert.Contains(t, err.Error(), "(3)")
	assert.Contains(t, err.Error(), "(2)")
}

func TestLoadEnvironmentSurface(t *testing.T) {
	// The recipe sees the fixed environment surface and nothing else
	path := writeRecipe(t, `
url="$target_architecture/$target_platform/$package_atom/$c_flags"
licenses=("$HOME$PATH$USER")
`)

	loader := NewLoader(testConfig())
	desc, err := loader.Load(context.Background(), testAtom(), path)
	require.NoError(t, err)

	assert.Equal(t, "x86_64/linux/hello-1.0-1/-O2", desc.URL)
	assert.Empty(t, desc.Licenses)
}

func TestLoadConditionalFields(t *testing.T) {
	path := writeRecipe(t, `
if [ "$target_architecture" = "x86_64" ]; then
	dependencies=(lib64)
else
	dependencies=(lib32)
fi
`)

	loader := NewLoader(testConfig())
	desc, err := loader.Load(context.Background(), testAtom(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib64"}, desc.Dependencies)
}

func TestLoadExecutionFailure(t *testing.T) {
	path := writeRecipe(t, `
echo "recipe went wrong" >&2
exit 3
`)

	loader := NewLoader(testConfig())
	_, err := loader.Load(context.Background(), testAtom(), path)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrRecipeExec))

	// The first failing field wins
	var ae *models.AlpacaError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "url", ae.Subject)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestLoadMissingRecipe(t *testing.T) {
	loader := NewLoader(testConfig())
	_, err := loader.Load(context.Background(), testAtom(), "/nonexistent/hello-1.0-1.recipe")
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrRecipeExec))
}

func TestProbeIdentity(t *testing.T) {
	path := writeRecipe(t, `
name=hello
version=1.0
release=1
`)

	loader := NewLoader(testConfig())
	atom, err := loader.ProbeIdentity(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, testAtom(), atom)
}

func TestProbeIdentityMissingField(t *testing.T) {
	path := writeRecipe(t, `
name=hello
version=1.0
`)

	loader := NewLoader(testConfig())
	_, err := loader.ProbeIdentity(context.Background(), path)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrRecipeExec))
	assert.Contains(t, err.Error(), "release")
}

func TestEnvironment(t *testing.T) {
	atom := testAtom()

	env := Environment(testConfig(), &atom)
	assert.Equal(t, "hello-1.0-1", env["package_atom"])
	assert.Equal(t, "1.0", env["package_version"])
	assert.Equal(t, "1", env["package_build"])
	assert.Equal(t, "x86_64", env["target_architecture"])

	probe := Environment(testConfig(), nil)
	_, ok := probe["package_atom"]
	assert.False(t, ok)
}
