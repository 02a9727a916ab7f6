/*
Package palette implements the NURUPAL palette decoder and encoder.

A palette is a fixed table of 256 entries mapping an index to either a Unicode
code point, for glyph palettes, or a packed 0xRRGGBB value, for color
palettes. The file is written as a 16 byte header followed by the 256 entries,
each stored big-endian at the entry size given in the header:

	offset  size  field
	0       7     signature "NURUPAL"
	7       1     version
	8       1     entry size (1-3)
	9       1     blank glyph index
	10      1     default foreground index
	11      1     default background index
	12      4     user data
	16      256n  entries

The resulting file is therefore 272, 528, or 784 bytes in size.
*/
package palette

import (
	"image/color"
)

const (
	// Signature is the tag every palette file starts with.
	Signature = "NURUPAL"
	// Version is the newest format version that can be decoded.
	Version = 1
	// Entries is the number of entries in every palette.
	Entries = 256

	headerSize = 16
)

// Palette is a 256 entry lookup table. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Palette struct {
	Version   uint8
	EntrySize uint8
	ChKey     uint8
	FgKey     uint8
	BgKey     uint8
	UserData  uint32
	Data      [Entries]uint32
}

// New returns an empty palette of the current version whose entries are
// entrySize bytes wide.
func New(entrySize uint8) *Palette {
	return &Palette{
		Version:   Version,
		EntrySize: entrySize,
	}
}

// Size returns the encoded size of the palette in bytes.
func (p *Palette) Size() int {
	return headerSize + Entries*int(p.EntrySize)
}

// Codepoint returns the raw entry at index i.
func (p *Palette) Codepoint(i uint8) uint32 {
	return p.Data[i]
}

// Glyph returns the entry at index i interpreted as a Unicode code point.
func (p *Palette) Glyph(i uint8) rune {
	return rune(p.Data[i])
}

// Blank returns the glyph at the blank index.
func (p *Palette) Blank() rune {
	return p.Glyph(p.ChKey)
}

// Color returns the entry at index i interpreted as a packed 0xRRGGBB value.
func (p *Palette) Color(i uint8) color.RGBA {
	v := p.Data[i]
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// Index returns the first index holding the value v.
func (p *Palette) Index(v uint32) (uint8, bool) {
	for i, d := range p.Data {
		if d == v {
			return uint8(i), true
		}
	}
	return 0, false
}

// ColorPalette returns the first n entries as a color.Palette.
func (p *Palette) ColorPalette(n int) color.Palette {
	if n > Entries {
		n = Entries
	}
	cp := make(color.Palette, n)
	for i := range cp {
		cp[i] = p.Color(uint8(i))
	}
	return cp
}

// FromColorPalette returns a three byte color palette holding the colors in
// cp, any further entries are left black. Colors beyond the 256th are ignored.
func FromColorPalette(cp color.Palette) *Palette {
	p := New(3)
	for i, c := range cp {
		if i == Entries {
			break
		}
		r, g, b, _ := c.RGBA()
		p.Data[i] = r>>8<<16 | g>>8<<8 | b>>8
	}
	return p
}

// Printable reports whether the code point cp is something other than a C0 or
// C1 control character.
func Printable(cp uint32) bool {
	if cp < 0x20 {
		return false
	}
	if cp > 0x7e && cp < 0xa0 {
		return false
	}
	return true
}
