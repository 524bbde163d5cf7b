package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtom(t *testing.T) {
	tests := []struct {
		input   string
		want    Atom
		wantErr bool
	}{
		{input: "binutils-2.44-1", want: Atom{Name: "binutils", Version: "2.44", Release: "1"}},
		{input: "gcc-libs-14.2.0-2", want: Atom{Name: "gcc-libs", Version: "14.2.0", Release: "2"}},
		{input: "binutils", wantErr: true},
		{input: "binutils-2.44", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			atom, err := ParseAtom(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsType(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, atom)
		})
	}
}

func TestAtomString(t *testing.T) {
	atom := Atom{Name: "binutils", Version: "2.44", Release: "1"}
	assert.Equal(t, "binutils-2.44-1", atom.String())

	// String and ParseAtom round-trip
	parsed, err := ParseAtom(atom.String())
	require.NoError(t, err)
	assert.Equal(t, atom, parsed)
}
