package object

// Format is the physical encoding of a loose object record.
type Format uint8

const (
	// FormatPacked is an uncompressed binary header followed by the
	// zlib-compressed content.
	FormatPacked Format = iota
	// FormatLegacy is "type size\0" and the content, zlib-compressed as
	// one stream.
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "packed"
}

// DetectFormat classifies a record from its first two bytes. A legacy record
// starts with a zlib stream header: CMF 0x78 (deflate, 32K window) and a
// 16-bit CMF/FLG word divisible by 31.
func DetectFormat(b0, b1 byte) Format {
	word := uint16(b0)<<8 | uint16(b1)
	if b0 == 0x78 && word%31 == 0 {
		return FormatLegacy
	}
	return FormatPacked
}
