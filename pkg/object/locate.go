package object

import (
	"fmt"
	"path/filepath"
)

// fanoutLen is the number of hex characters used for the directory level.
const fanoutLen = 2

// SplitHash splits a 40-character hex hash into its fan-out directory (the
// first two characters) and file name (the remaining 38). The result is
// always lowercase.
func SplitHash(hexHash string) (dir, file string, err error) {
	h, err := ParseHash(hexHash)
	if err != nil {
		return "", "", err
	}
	dir, file = h.split()
	return dir, file, nil
}

// JoinHash reverses SplitHash.
func JoinHash(dir, file string) (Hash, error) {
	if dir == "" || file == "" {
		return Hash{}, fmt.Errorf("%w: object path %q/%q has an empty component", ErrInvalidInput, dir, file)
	}
	if len(dir) != fanoutLen {
		return Hash{}, fmt.Errorf("%w: fan-out directory %q: want %d hex characters", ErrInvalidInput, dir, fanoutLen)
	}
	return ParseHash(dir + file)
}

func (h Hash) split() (dir, file string) {
	s := h.String()
	return s[:fanoutLen], s[fanoutLen:]
}

// ObjectPath returns the file that holds, or would hold, the object h:
// <root>/<2 hex>/<38 hex>.
func (s *Store) ObjectPath(h Hash) string {
	dir, file := h.split()
	return filepath.Join(s.root, dir, file)
}

func (s *Store) fanoutDir(h Hash) string {
	dir, _ := h.split()
	return filepath.Join(s.root, dir)
}
