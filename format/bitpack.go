package format

// MaxWidth is the widest integer, in bytes, that can be packed.
const MaxWidth = 4

// WriteInt writes the low width bytes of v into b at offset off, most
// significant byte first, and returns the offset immediately after them.
// Bits of v that do not fit in width bytes are silently discarded. A width of
// zero writes nothing. It panics if b is too short, like
// binary.BigEndian.PutUint32.
func WriteInt(v uint32, width int, b []byte, off int) int {
	for i := 0; i < width; i++ {
		b[off] = byte(v >> (8 * uint(width-i-1)) & 0xff)
		off++
	}
	return off
}

// ReadInt reads a width byte big-endian unsigned integer from b at offset off
// and returns it along with the offset immediately after it. A width of zero
// reads nothing and returns zero.
func ReadInt(width int, b []byte, off int) (uint32, int, error) {
	if off < 0 || width < 0 || len(b)-off < width {
		have := len(b) - off
		if have < 0 {
			have = 0
		}
		return 0, off, &TruncatedBufferError{Offset: off, Need: width, Have: have}
	}

	var v uint32
	for i := 0; i < width; i++ {
		v = v<<8 | uint32(b[off])
		off++
	}
	return v, off, nil
}
