package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
)

// Hash is a 20-byte SHA-1 object digest. Its canonical text form is 40
// lowercase hex characters.
type Hash [sha1.Size]byte

// HexSize is the length of a hash in its textual form.
const HexSize = 2 * sha1.Size

// UnknownSize tells ComputeHash and Store.Put to measure the content.
const UnknownSize int64 = -1

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether h is the all-zero hash, which never names a real
// object.
func (h Hash) IsZero() bool { return h == Hash{} }

// ParseHash converts a 40-character hex string to a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != HexSize {
		return h, fmt.Errorf("%w: hash %q: want %d hex characters, got %d", ErrInvalidInput, s, HexSize, len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("%w: hash %q: %v", ErrInvalidInput, s, err)
	}
	return h, nil
}

// HashObject computes the SHA-1 of the envelope "type len\0content".
// It panics if objType is not a valid type.
func HashObject(objType ObjectType, data []byte) Hash {
	header, err := AppendLegacyHeader(nil, objType, int64(len(data)))
	if err != nil {
		panic(err)
	}
	d := sha1.New()
	d.Write(header)
	d.Write(data)
	return sumHash(d.Sum(nil))
}

// ComputeHash returns the hash r would be stored under without touching
// the disk. When size is UnknownSize the content is measured: seekable
// readers by seeking, anything else by buffering it in memory. Content is
// hashed in bounded chunks.
func ComputeHash(objType ObjectType, r io.Reader, size int64) (Hash, error) {
	if err := checkHeader(objType, size); err != nil {
		return Hash{}, err
	}
	if size == UnknownSize {
		if rs, ok := seekable(r); ok {
			n, err := remaining(rs)
			if err != nil {
				return Hash{}, err
			}
			size = n
		} else {
			data, err := io.ReadAll(r)
			if err != nil {
				return Hash{}, fmt.Errorf("compute hash: read content: %w", err)
			}
			return HashObject(objType, data), nil
		}
	}
	header, err := AppendLegacyHeader(nil, objType, size)
	if err != nil {
		return Hash{}, err
	}
	return hashStream(header, r, size, make([]byte, defaultBufferSize))
}

// hashStream digests header followed by exactly size bytes of r.
func hashStream(header []byte, r io.Reader, size int64, buf []byte) (Hash, error) {
	d := sha1.New()
	d.Write(header)
	if err := copyExact(d, r, size, buf); err != nil {
		return Hash{}, fmt.Errorf("compute hash: %w", err)
	}
	return sumHash(d.Sum(nil)), nil
}

func sumHash(sum []byte) Hash {
	var h Hash
	copy(h[:], sum)
	return h
}

// seekable reports whether r can actually seek. Pipes and terminals
// implement io.Seeker but fail on use.
func seekable(r io.Reader) (io.ReadSeeker, bool) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, false
	}
	if _, err := rs.Seek(0, io.SeekCurrent); err != nil {
		return nil, false
	}
	return rs, true
}

// remaining reports how many bytes lie between the current offset of s and
// its end, leaving the offset where it was.
func remaining(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("measure content: %w", err)
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("measure content: %w", err)
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, fmt.Errorf("measure content: %w", err)
	}
	return end - cur, nil
}
