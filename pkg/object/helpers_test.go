package object

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

var allTypes = []ObjectType{TypeBlob, TypeTree, TypeCommit, TypeTag}

func tempStore(t testing.TB, opts ...Option) *Store {
	t.Helper()
	quiet := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewStore(t.TempDir(), append([]Option{quiet}, opts...)...)
}

func deflate(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// legacyRecord compresses header and content as one stream. The header is
// taken verbatim so tests can lie about the size.
func legacyRecord(t testing.TB, header string, data []byte) []byte {
	t.Helper()
	return deflate(t, append([]byte(header), data...))
}

// packedRecord builds a record in the packed loose format.
func packedRecord(t testing.TB, objType ObjectType, data []byte) []byte {
	t.Helper()
	hdr, err := AppendPackedHeader(nil, objType, int64(len(data)))
	require.NoError(t, err)
	return append(hdr, deflate(t, data)...)
}

// writeRecord places raw at the path for h, bypassing Put.
func writeRecord(t testing.TB, s *Store, h Hash, raw []byte) string {
	t.Helper()
	path := s.ObjectPath(h)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func randomBytes(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.Uint32())
	}
	return out
}

// tempFiles lists leftover write or spool files anywhere under the root.
func tempFiles(t testing.TB, s *Store) []string {
	t.Helper()
	var found []string
	err := filepath.WalkDir(s.Root(), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), tempPrefix) {
			found = append(found, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return found
}
