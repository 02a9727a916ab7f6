package image

import "fmt"

const (
	widthMask   = 0x0f
	indexedFlag = 0x80
	flagsMask   = 0x70
)

// Mode describes how one channel of a cell is stored. It is unpacked from the
// raw mode byte once and only packed again when encoding.
type Mode struct {
	// Width is the number of bytes stored per cell, zero if the channel is
	// absent.
	Width uint8
	// Indexed is set when the value is an index into a palette.
	Indexed bool

	// Remaining bits of the mode byte, kept so it survives a round trip
	flags uint8
}

// Common modes. A one byte color channel holds 16 foreground and 16
// background colors, a two byte one 256 of each.
var (
	ModeNone       = Mode{}
	ModeByte       = Mode{Width: 1}
	ModeShort      = Mode{Width: 2}
	ModeGlyphIndex = Mode{Width: 1, Indexed: true}
	ModeColorIndex = Mode{Width: 2, Indexed: true}
)

// ParseMode unpacks a raw mode byte.
func ParseMode(b uint8) Mode {
	return Mode{
		Width:   b & widthMask,
		Indexed: b&indexedFlag != 0,
		flags:   b & flagsMask,
	}
}

// Byte packs m back into a raw mode byte.
func (m Mode) Byte() uint8 {
	b := m.Width&widthMask | m.flags
	if m.Indexed {
		b |= indexedFlag
	}
	return b
}

func (m Mode) String() string {
	if m.Indexed {
		return fmt.Sprintf("%d(indexed)", m.Width)
	}
	return fmt.Sprintf("%d", m.Width)
}

// Color values pack the foreground into the upper half of the channel and the
// background into the lower half.
func (m Mode) split() (uint, uint32) {
	shift := 4 * uint(m.Width)
	return shift, uint32(1)<<shift - 1
}
