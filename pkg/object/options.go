package object

import (
	"log/slog"

	"github.com/klauspost/compress/zlib"
)

const (
	defaultBufferSize = 32 << 10
	minBufferSize     = 512
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for write and corruption events. The
// default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCompressionLevel sets the zlib level for new objects, from
// zlib.HuffmanOnly (-2) to zlib.BestCompression (9). Every level produces a
// stream header that reads back as the legacy format.
func WithCompressionLevel(level int) Option {
	return func(s *Store) { s.level = level }
}

// WithFsync makes Put sync each object file before renaming it into place.
func WithFsync(enabled bool) Option {
	return func(s *Store) { s.fsync = enabled }
}

// WithBufferSize sets the chunk size used to stream content through the
// hasher and compressor. Values below 512 bytes are raised to 512.
func WithBufferSize(n int) Option {
	return func(s *Store) { s.bufSize = max(n, minBufferSize) }
}

func defaultOptions(s *Store) {
	s.logger = slog.Default()
	s.level = zlib.DefaultCompression
	s.bufSize = defaultBufferSize
}
