package object

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// encodeLegacy writes zlib(header + content) to dst, streaming exactly size
// bytes of content from src through buf.
func encodeLegacy(dst io.Writer, header []byte, src io.Reader, size int64, level int, buf []byte) error {
	zw, err := zlib.NewWriterLevel(dst, level)
	if err != nil {
		return fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := zw.Write(header); err != nil {
		return fmt.Errorf("compress header: %w", err)
	}
	if err := copyExact(zw, src, size, buf); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress close: %w", err)
	}
	return nil
}

// copyExact copies size bytes from src to dst and fails with ErrInvalidInput
// if src holds fewer or more bytes than that.
func copyExact(dst io.Writer, src io.Reader, size int64, buf []byte) error {
	n, err := io.CopyBuffer(dst, io.LimitReader(src, size), buf)
	if err != nil {
		return fmt.Errorf("copy content: %w", err)
	}
	if n < size {
		return fmt.Errorf("%w: content is %d bytes, declared size %d", ErrInvalidInput, n, size)
	}

	var probe [1]byte
	k, err := io.ReadFull(src, probe[:])
	if k > 0 {
		return fmt.Errorf("%w: content is longer than declared size %d", ErrInvalidInput, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("copy content: %w", err)
	}
	return nil
}
