package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("2.44-1")
	require.NoError(t, err)
	assert.Equal(t, "2.44", v.Upstream)
	assert.Equal(t, 1, v.Release)
	assert.Equal(t, "2.44-1", v.String())

	v, err = ParseVersion("2.44")
	require.NoError(t, err)
	assert.Equal(t, "2.44", v.Upstream)
	assert.Equal(t, 0, v.Release)

	// Non-numeric suffix stays part of the upstream version
	v, err = ParseVersion("1.0-rc1")
	require.NoError(t, err)
	assert.Equal(t, "1.0-rc1", v.Upstream)

	_, err = ParseVersion("")
	assert.Error(t, err)
}

func TestVersionCompare(t *testing.T) {
	mustParse := func(s string) Version {
		v, err := ParseVersion(s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		a, b string
		want int
	}{
		{"2.44-1", "2.43-1", 1},
		{"2.43-1", "2.44-1", -1},
		{"2.44-1", "2.44-1", 0},
		{"2.44-2", "2.44-1", 1},
		{"10.0-1", "9.0-1", 1}, // numeric, not lexicographic
	}

	for _, tt := range tests {
		got := mustParse(tt.a).Compare(mustParse(tt.b))
		switch {
		case tt.want > 0:
			assert.Positivef(t, got, "%s should sort after %s", tt.a, tt.b)
		case tt.want < 0:
			assert.Negativef(t, got, "%s should sort before %s", tt.a, tt.b)
		default:
			assert.Zerof(t, got, "%s should equal %s", tt.a, tt.b)
		}
	}
}

func TestLatestVersion(t *testing.T) {
	var candidates []Version
	for _, s := range []string{"2.43-1", "2.44-1", "2.44-3", "2.44-2"} {
		v, err := ParseVersion(s)
		require.NoError(t, err)
		candidates = append(candidates, v)
	}

	best, ok := LatestVersion(candidates, "")
	require.True(t, ok)
	assert.Equal(t, "2.44-3", best.String())

	best, ok = LatestVersion(candidates, "2.43")
	require.True(t, ok)
	assert.Equal(t, "2.43-1", best.String())

	best, ok = LatestVersion(candidates, "2.44-2")
	require.True(t, ok)
	assert.Equal(t, "2.44-2", best.String())

	_, ok = LatestVersion(candidates, "3.0")
	assert.False(t, ok)
}
