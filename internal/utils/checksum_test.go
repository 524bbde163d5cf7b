package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0644))

	digest, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447", digest)
}

func TestVerifyFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0644))

	assert.NoError(t, VerifyFileSHA256(path, "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447"))

	// Case-insensitive comparison
	assert.NoError(t, VerifyFileSHA256(path, "A948904F2F0F479B8F8197694B30184B0D2ED1C1CD2A1EC0FB85D299A192A447"))

	err := VerifyFileSHA256(path, "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestFileSHA256MissingFile(t *testing.T) {
	_, err := FileSHA256("/nonexistent/file")
	assert.Error(t, err)
}
