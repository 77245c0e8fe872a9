package object

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// maxLegacyHeader bounds the "type size" text of a legacy record. The
// longest valid header, "commit 9223372036854775807", is 26 bytes.
const maxLegacyHeader = 64

// checkHeader validates a (type, size) pair supplied by a caller. size may
// be UnknownSize.
func checkHeader(objType ObjectType, size int64) error {
	if !objType.Valid() {
		return fmt.Errorf("%w: object type %s", ErrInvalidInput, objType)
	}
	if size < UnknownSize {
		return fmt.Errorf("%w: object size %d is negative", ErrInvalidInput, size)
	}
	return nil
}

// AppendLegacyHeader appends the textual header "type size\0" to dst. This
// is the header hashed for every object and the only one the store writes.
func AppendLegacyHeader(dst []byte, objType ObjectType, size int64) ([]byte, error) {
	if err := checkHeader(objType, size); err != nil {
		return dst, err
	}
	if size == UnknownSize {
		return dst, fmt.Errorf("%w: object size is required for a header", ErrInvalidInput)
	}
	dst = append(dst, objType.String()...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, size, 10)
	return append(dst, 0), nil
}

// parseLegacyHeader parses the "type size" text preceding the NUL of a
// legacy record.
func parseLegacyHeader(text []byte) (ObjectType, int64, error) {
	name, digits, ok := bytes.Cut(text, []byte{' '})
	if !ok {
		return 0, 0, corruptf(nil, "invalid object header %q", text)
	}
	objType, err := ParseObjectType(string(name))
	if err != nil {
		return 0, 0, corruptf(nil, "invalid object header %q", text)
	}
	if !isDigits(digits) {
		return 0, 0, corruptf(nil, "invalid object header %q", text)
	}
	size, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, 0, corruptf(nil, "invalid object size %q", digits)
	}
	return objType, size, nil
}

func isDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// AppendPackedHeader appends the variable-length binary header of the packed
// loose format: the first byte holds the type code in bits 4-6 and the low
// four size bits, every following byte seven more size bits, and bit 0x80
// flags that another byte follows.
func AppendPackedHeader(dst []byte, objType ObjectType, size int64) ([]byte, error) {
	if err := checkHeader(objType, size); err != nil {
		return dst, err
	}
	if size == UnknownSize {
		return dst, fmt.Errorf("%w: object size is required for a header", ErrInvalidInput)
	}

	u := uint64(size)
	b := byte(objType&0x7)<<4 | byte(u&0x0f)
	u >>= 4
	if u > 0 {
		b |= 0x80
	}
	dst = append(dst, b)

	for u > 0 {
		next := byte(u & 0x7f)
		u >>= 7
		if u > 0 {
			next |= 0x80
		}
		dst = append(dst, next)
	}
	return dst, nil
}

// DecodePackedHeader decodes a packed header from the start of buf,
// returning the object type, content size, and number of header bytes.
func DecodePackedHeader(buf []byte) (ObjectType, int64, int, error) {
	if len(buf) == 0 {
		return 0, 0, 0, corruptf(ErrTruncatedHeader, "packed header")
	}

	b := buf[0]
	code := (b >> 4) & 0x7
	size := uint64(b & 0x0f)
	shift := uint(4)
	used := 1

	for b&0x80 != 0 {
		if used >= len(buf) {
			return 0, 0, 0, corruptf(ErrTruncatedHeader, "packed header")
		}
		b = buf[used]
		used++

		v := uint64(b & 0x7f)
		if shift >= 63 || v > math.MaxInt64>>shift {
			return 0, 0, 0, corruptf(nil, "packed header: size overflows")
		}
		size |= v << shift
		shift += 7
	}

	objType := ObjectType(code)
	if !objType.Valid() {
		return 0, 0, 0, corruptf(ErrInvalidObjectType, "packed header type code %d", code)
	}
	return objType, int64(size), used, nil
}
