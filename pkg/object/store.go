package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// Store is a content-addressed loose object store with a 2-character
// fan-out directory layout: <root>/ab/cdef0123...
//
// Objects are read in either the legacy or the packed loose format and
// always written in the legacy format. A Store holds no cache; it is safe
// for concurrent use, including by several processes sharing one root.
type Store struct {
	root    string
	logger  *slog.Logger
	level   int
	fsync   bool
	bufSize int
	bufs    sync.Pool
}

// NewStore creates a Store rooted at the given objects directory. The
// directory is created lazily on first write.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{root: root}
	defaultOptions(s)
	for _, opt := range opts {
		opt(s)
	}
	s.bufs.New = func() any {
		buf := make([]byte, s.bufSize)
		return &buf
	}
	return s
}

// Root returns the objects directory.
func (s *Store) Root() string { return s.root }

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.ObjectPath(h))
	return err == nil
}

// Get reads and decodes the object h. A missing object yields an error
// matching ErrNotFound; an undecodable one a *CorruptObjectError.
func (s *Store) Get(h Hash) (*RawObject, error) {
	path := s.ObjectPath(h)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}

	obj, err := Decode(raw)
	if err != nil {
		s.logger.Warn("corrupt loose object", "hash", h.String(), "path", path, "err", err)
		return nil, &CorruptObjectError{Hash: h, Path: path, Err: err}
	}
	return obj, nil
}

// Stat returns the type and size of object h. The record is fully decoded,
// so a size that disagrees with the content is reported as corruption.
func (s *Store) Stat(h Hash) (ObjectType, int64, error) {
	obj, err := s.Get(h)
	if err != nil {
		return 0, 0, err
	}
	return obj.Type, obj.Size(), nil
}

// PutBytes stores data as an object of the given type.
func (s *Store) PutBytes(objType ObjectType, data []byte) (Hash, error) {
	return s.Put(objType, bytes.NewReader(data), int64(len(data)))
}

// Put stores the content of r as an object of the given type and returns
// its hash. size may be UnknownSize, in which case the content is measured
// first. If the object already exists nothing is written.
//
// Content is streamed in fixed-size chunks: once to hash it and once to
// compress it. Seekable readers are rewound between the passes; other
// readers are first spooled to a temporary file under the store root.
// The object file appears at its final path only once it is complete.
func (s *Store) Put(objType ObjectType, r io.Reader, size int64) (Hash, error) {
	if err := checkHeader(objType, size); err != nil {
		return Hash{}, err
	}

	bufp := s.bufs.Get().(*[]byte)
	defer s.bufs.Put(bufp)
	buf := *bufp

	src, size, release, err := s.rewindable(r, size, buf)
	if err != nil {
		return Hash{}, err
	}
	defer release()

	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return Hash{}, fmt.Errorf("object write: %w", err)
	}
	header, err := AppendLegacyHeader(nil, objType, size)
	if err != nil {
		return Hash{}, err
	}
	h, err := hashStream(header, src, size, buf)
	if err != nil {
		return Hash{}, err
	}

	// Fast path: already exists.
	if s.Has(h) {
		s.logger.Debug("loose object exists", "hash", h.String(), "type", objType.String())
		return h, nil
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return Hash{}, fmt.Errorf("object write rewind: %w", err)
	}
	if err := s.writeLoose(h, header, src, size, buf); err != nil {
		return Hash{}, err
	}
	s.logger.Debug("loose object written", "hash", h.String(), "type", objType.String(), "size", size)
	return h, nil
}

// writeLoose compresses header and content into a temp file in the fan-out
// directory and renames it into place.
func (s *Store) writeLoose(h Hash, header []byte, src io.Reader, size int64, buf []byte) error {
	if err := os.MkdirAll(s.fanoutDir(h), 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(s.fanoutDir(h), tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := encodeLegacy(tmp, header, src, size, s.level, buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("object write %s: %w", h, err)
	}
	if s.fsync {
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("object write sync: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.ObjectPath(h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// rewindable returns a seekable view of r holding exactly the content to
// store, its size, and a release func for any temporary resources.
func (s *Store) rewindable(r io.Reader, size int64, buf []byte) (io.ReadSeeker, int64, func(), error) {
	if rs, ok := seekable(r); ok {
		if size == UnknownSize {
			n, err := remaining(rs)
			if err != nil {
				return nil, 0, nil, err
			}
			size = n
		}
		return rs, size, func() {}, nil
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, 0, nil, fmt.Errorf("object spool mkdir: %w", err)
	}
	spool, err := os.CreateTemp(s.root, tempPrefix+"spool-*")
	if err != nil {
		return nil, 0, nil, fmt.Errorf("object spool tmpfile: %w", err)
	}
	release := func() {
		spool.Close()
		os.Remove(spool.Name())
	}

	n, err := io.CopyBuffer(struct{ io.Writer }{spool}, r, buf)
	if err != nil {
		release()
		return nil, 0, nil, fmt.Errorf("object spool: %w", err)
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		release()
		return nil, 0, nil, fmt.Errorf("object spool rewind: %w", err)
	}
	if size == UnknownSize {
		size = n
	}
	return spool, size, release, nil
}
