package object

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoinHash(t *testing.T) {
	const hexHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"
	dir, file, err := SplitHash(hexHash)
	require.NoError(t, err)
	assert.Equal(t, "4b", dir)
	assert.Equal(t, "825dc642cb6eb9a060e54bf8d69288fbee4904", file)
	assert.Len(t, file, 38)

	h, err := JoinHash(dir, file)
	require.NoError(t, err)
	assert.Equal(t, hexHash, h.String())
}

func TestSplitHashNormalizesCase(t *testing.T) {
	dir, file, err := SplitHash("4B825DC642CB6EB9A060E54BF8D69288FBEE4904")
	require.NoError(t, err)
	assert.Equal(t, "4b", dir)
	assert.Equal(t, "825dc642cb6eb9a060e54bf8d69288fbee4904", file)
}

func TestSplitHashInvalid(t *testing.T) {
	for _, bad := range []string{"", "4b", "4b825dc642cb6eb9a060e54bf8d69288fbee490", "not-a-hash-not-a-hash-not-a-hash-not-a-h"} {
		_, _, err := SplitHash(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "SplitHash(%q)", bad)
	}
}

func TestJoinHashInvalid(t *testing.T) {
	tests := []struct{ dir, file string }{
		{"", "825dc642cb6eb9a060e54bf8d69288fbee4904"},
		{"4b", ""},
		{"4", "b825dc642cb6eb9a060e54bf8d69288fbee4904"},
		{"4b8", "25dc642cb6eb9a060e54bf8d69288fbee4904"},
		{"4b", "825dc642cb6eb9a060e54bf8d69288fbee49"},
		{"zz", "825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}
	for _, tc := range tests {
		_, err := JoinHash(tc.dir, tc.file)
		assert.ErrorIs(t, err, ErrInvalidInput, "JoinHash(%q, %q)", tc.dir, tc.file)
	}
}

func TestObjectPath(t *testing.T) {
	s := NewStore("/objects")
	h := HashObject(TypeBlob, nil)
	assert.Equal(t, filepath.Join("/objects", "e6", "9de29bb2d1d6434b8b29ae775ad8c2e48c5391"), s.ObjectPath(h))
}
