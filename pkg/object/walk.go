package object

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// tempPrefix marks in-progress writes and spool files. Walk ignores them.
const tempPrefix = ".tmp-"

// Walk calls fn for every loose object in the store, in hash order. Names
// that are not fan-out directories or 38-character hex files are skipped.
// A missing root is an empty store. If fn returns an error Walk stops and
// returns it.
func (s *Store) Walk(fn func(Hash) error) error {
	hashes, err := s.listLooseObjectHashes()
	if err != nil {
		return err
	}
	for _, h := range hashes {
		if err := fn(h); err != nil {
			return err
		}
	}
	return nil
}

// List returns the hashes of every loose object in the store.
func (s *Store) List() ([]Hash, error) {
	return s.listLooseObjectHashes()
}

func (s *Store) listLooseObjectHashes() ([]Hash, error) {
	fanoutDirs, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read objects dir: %w", err)
	}

	hashes := make([]Hash, 0)
	for _, fanoutDir := range fanoutDirs {
		if !fanoutDir.IsDir() {
			continue
		}
		prefix := fanoutDir.Name()
		if !isHexHashComponent(prefix, fanoutLen) {
			continue
		}

		objectEntries, err := os.ReadDir(filepath.Join(s.root, prefix))
		if err != nil {
			return nil, fmt.Errorf("read objects fanout %s: %w", prefix, err)
		}
		for _, objectEntry := range objectEntries {
			suffix := objectEntry.Name()
			if objectEntry.IsDir() || strings.HasPrefix(suffix, tempPrefix) {
				continue
			}
			if !isHexHashComponent(suffix, HexSize-fanoutLen) {
				continue
			}
			h, err := JoinHash(prefix, suffix)
			if err != nil {
				continue
			}
			hashes = append(hashes, h)
		}
	}

	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	return hashes, nil
}

// isHexHashComponent accepts only lowercase hex, the form the store writes.
func isHexHashComponent(s string, expectedLen int) bool {
	if len(s) != expectedLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
