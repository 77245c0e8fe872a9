package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// VerifySummary reports the outcome of Store.Verify.
type VerifySummary struct {
	Objects int
	Corrupt []*CorruptObjectError
}

// OK reports whether every object verified cleanly.
func (v *VerifySummary) OK() bool { return len(v.Corrupt) == 0 }

// Verify decodes every loose object and checks that its content hashes to
// the name it is stored under. Bad objects are collected in the summary;
// the returned error is reserved for I/O failures and cancellation.
// workers <= 0 means GOMAXPROCS.
func (s *Store) Verify(ctx context.Context, workers int) (*VerifySummary, error) {
	hashes, err := s.listLooseObjectHashes()
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu      sync.Mutex
		summary = &VerifySummary{Objects: len(hashes)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, h := range hashes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bad, err := s.verifyOne(h)
			if err != nil {
				return err
			}
			if bad != nil {
				mu.Lock()
				summary.Corrupt = append(summary.Corrupt, bad)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	sort.Slice(summary.Corrupt, func(i, j int) bool {
		return bytes.Compare(summary.Corrupt[i].Hash[:], summary.Corrupt[j].Hash[:]) < 0
	})
	return summary, nil
}

func (s *Store) verifyOne(h Hash) (*CorruptObjectError, error) {
	obj, err := s.Get(h)
	if err != nil {
		var corrupt *CorruptObjectError
		switch {
		case errors.As(err, &corrupt):
			return corrupt, nil
		case errors.Is(err, ErrNotFound):
			// Removed since the listing; nothing left to check.
			return nil, nil
		}
		return nil, err
	}

	if got := HashObject(obj.Type, obj.Data); got != h {
		path := s.ObjectPath(h)
		s.logger.Warn("loose object hash mismatch", "hash", h.String(), "actual", got.String(), "path", path)
		return &CorruptObjectError{
			Hash: h,
			Path: path,
			Err:  fmt.Errorf("hash mismatch: content hashes to %s", got),
		}, nil
	}
	return nil, nil
}
