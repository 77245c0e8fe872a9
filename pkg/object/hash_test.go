package object

import (
	"bytes"
	"crypto/sha1"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hashes produced by `git hash-object`.
func TestHashObjectKnownValues(t *testing.T) {
	tests := []struct {
		objType ObjectType
		data    string
		want    string
	}{
		{TypeBlob, "", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{TypeBlob, "test content\n", "d670460b4b4aece5915caf5c68d12f560a9fe3e4"},
		{TypeTree, "", "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HashObject(tc.objType, []byte(tc.data)).String())
	}
}

func TestHashObjectEnvelope(t *testing.T) {
	data := []byte("hello")
	want := sha1.Sum([]byte("commit 5\x00hello"))
	assert.Equal(t, Hash(want), HashObject(TypeCommit, data))

	assert.NotEqual(t, HashObject(TypeBlob, data), HashObject(TypeTag, data),
		"different types should produce different hashes")
}

func TestParseHash(t *testing.T) {
	const hexHash = "d670460b4b4aece5915caf5c68d12f560a9fe3e4"
	h, err := ParseHash(hexHash)
	require.NoError(t, err)
	assert.Equal(t, hexHash, h.String())
	assert.False(t, h.IsZero())
	assert.True(t, Hash{}.IsZero())

	upper, err := ParseHash(strings.ToUpper(hexHash))
	require.NoError(t, err)
	assert.Equal(t, h, upper)

	for _, bad := range []string{
		"",
		hexHash[:39],
		hexHash + "0",
		"z670460b4b4aece5915caf5c68d12f560a9fe3e4",
	} {
		_, err := ParseHash(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "ParseHash(%q)", bad)
	}
}

func TestComputeHashMatchesHashObject(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 10_000)
	want := HashObject(TypeBlob, data)

	readers := map[string]func() (io.Reader, int64){
		"seekable known size": func() (io.Reader, int64) {
			return bytes.NewReader(data), int64(len(data))
		},
		"seekable unknown size": func() (io.Reader, int64) {
			return bytes.NewReader(data), UnknownSize
		},
		"stream known size": func() (io.Reader, int64) {
			return iotest.HalfReader(bytes.NewReader(data)), int64(len(data))
		},
		"stream unknown size": func() (io.Reader, int64) {
			return iotest.OneByteReader(bytes.NewReader(data)), UnknownSize
		},
	}
	for name, mk := range readers {
		t.Run(name, func(t *testing.T) {
			r, size := mk()
			got, err := ComputeHash(TypeBlob, r, size)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestComputeHashFromOffset(t *testing.T) {
	r := strings.NewReader("skipblob body")
	_, err := r.Seek(4, io.SeekStart)
	require.NoError(t, err)

	got, err := ComputeHash(TypeBlob, r, UnknownSize)
	require.NoError(t, err)
	assert.Equal(t, HashObject(TypeBlob, []byte("blob body")), got)
}

func TestComputeHashInvalidInput(t *testing.T) {
	_, err := ComputeHash(ObjectType(0), strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeHash(TypeBlob, strings.NewReader("x"), -2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeHash(TypeBlob, strings.NewReader("short"), 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeHash(TypeBlob, strings.NewReader("too long"), 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeHashReadError(t *testing.T) {
	boom := io.ErrClosedPipe
	_, err := ComputeHash(TypeBlob, iotest.ErrReader(boom), 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
