package object

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Store.Get when no file exists for a hash.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidInput marks caller mistakes: an unknown type name, a bad
	// size, or a malformed hash string.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptObject marks a stored record that cannot be decoded.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrInvalidObjectType is a corruption kind: a packed header carried a
	// type code outside commit/tree/blob/tag.
	ErrInvalidObjectType = errors.New("invalid loose object type")

	// ErrTruncatedHeader is a corruption kind: a packed header's
	// continuation chain ran past the end of the record.
	ErrTruncatedHeader = errors.New("object header truncated")
)

// corruptf builds a decode error that matches ErrCorruptObject and, when
// cause is non-nil, cause as well.
func corruptf(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrCorruptObject, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrCorruptObject, msg, cause)
}

// CorruptObjectError locates a record that failed to decode or verify.
type CorruptObjectError struct {
	Hash Hash
	Path string
	Err  error
}

func (e *CorruptObjectError) Error() string {
	return fmt.Sprintf("object %s (%s): %v", e.Hash, e.Path, e.Err)
}

func (e *CorruptObjectError) Unwrap() error { return e.Err }

// Is makes every CorruptObjectError match ErrCorruptObject, including
// hash mismatches found by Verify whose cause is not itself a decode error.
func (e *CorruptObjectError) Is(target error) bool {
	return target == ErrCorruptObject
}
