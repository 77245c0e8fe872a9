package object

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

// Decode parses one stored loose record in either physical format and
// verifies that the content length matches the header. Every error it
// returns matches ErrCorruptObject.
func Decode(raw []byte) (*RawObject, error) {
	if len(raw) < 2 {
		return nil, corruptf(nil, "object file too small (%d bytes)", len(raw))
	}
	if DetectFormat(raw[0], raw[1]) == FormatLegacy {
		return decodeLegacy(raw)
	}
	return decodePacked(raw)
}

// decodeLegacy handles zlib("type size\0" + content).
func decodeLegacy(raw []byte) (*RawObject, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, corruptf(err, "zlib header")
	}
	defer zr.Close()

	br := bufio.NewReaderSize(zr, maxLegacyHeader)
	line, err := br.ReadSlice(0)
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return nil, corruptf(nil, "object header longer than %d bytes", maxLegacyHeader)
	case errors.Is(err, io.EOF):
		return nil, corruptf(nil, "invalid object header: no NUL terminator")
	case err != nil:
		return nil, corruptf(err, "inflate header")
	}

	objType, size, err := parseLegacyHeader(line[:len(line)-1])
	if err != nil {
		return nil, err
	}
	data, err := readContent(br, size)
	if err != nil {
		return nil, err
	}
	return &RawObject{Type: objType, Data: data}, nil
}

// decodePacked handles packed-header + zlib(content).
func decodePacked(raw []byte) (*RawObject, error) {
	objType, size, used, err := DecodePackedHeader(raw)
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw[used:]))
	if err != nil {
		return nil, corruptf(err, "zlib header")
	}
	defer zr.Close()

	data, err := readContent(zr, size)
	if err != nil {
		return nil, err
	}
	return &RawObject{Type: objType, Data: data}, nil
}

// readContent reads exactly size bytes of inflated content and then
// requires a clean end of stream, which also checks the zlib checksum. It
// never inflates more than size+1 bytes.
func readContent(r io.Reader, size int64) ([]byte, error) {
	if size == math.MaxInt64 {
		return nil, corruptf(nil, "object size %d out of range", size)
	}
	data, err := io.ReadAll(io.LimitReader(r, size+1))
	if err != nil {
		return nil, corruptf(err, "inflate content")
	}
	if int64(len(data)) != size {
		return nil, corruptf(nil, "size mismatch: header=%d actual=%d", size, len(data))
	}

	var probe [1]byte
	n, err := io.ReadFull(r, probe[:])
	if n > 0 {
		return nil, corruptf(nil, "size mismatch: content longer than header size %d", size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, corruptf(err, "inflate content")
	}
	return data, nil
}
