package repository

import (
	"testing"

	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		declaration string
		scheme      Scheme
		location    string
		wantErr     bool
	}{
		{declaration: "git+https://example.test/repo.git", scheme: SchemeGit, location: "https://example.test/repo.git"},
		{declaration: "git+/srv/recipes", scheme: SchemeGit, location: "/srv/recipes"},
		{declaration: "local+/srv/recipes", scheme: SchemeLocal, location: "/srv/recipes"},
		{declaration: "https://example.test/repo.git", wantErr: true},
		{declaration: "svn+https://example.test/repo", wantErr: true},
		{declaration: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.declaration, func(t *testing.T) {
			src, err := ParseSource(tt.declaration)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, models.IsType(err, models.ErrRepoParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.declaration, src.Declaration)
			assert.Equal(t, tt.scheme, src.Scheme)
			assert.Equal(t, tt.location, src.Location)
		})
	}
}

func TestParseSourceDeterministic(t *testing.T) {
	a, err := ParseSource("git+https://example.test/repo.git")
	require.NoError(t, err)
	b, err := ParseSource("git+https://example.test/repo.git")
	require.NoError(t, err)
	assert.Equal(t, *a, *b)
}
