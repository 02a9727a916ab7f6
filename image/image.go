/*
Package image implements the NURUIMG character grid decoder and encoder.

An image is a rows by cols grid of cells, each cell storing a glyph, a packed
foreground and background color, and a metadata value. How many bytes each of
the three channels occupies per cell is given by the low nibble of its mode
byte, a width of zero meaning the channel is not stored at all. The high bit
of a mode byte marks the channel as indexing into a palette.

The file is written as a 32 byte header followed by the cells in row-major
order, each cell being its glyph, color and metadata values packed big-endian
at their channel widths:

	offset  size  field
	0       7     signature "NURUIMG"
	7       1     version
	8       1     glyph mode
	9       1     color mode
	10      1     metadata mode
	11      2     columns
	13      2     rows
	15      1     blank glyph index
	16      1     default foreground index
	17      1     default background index
	18      7     glyph palette name
	25      7     color palette name
	32      -     cells
*/
package image

import (
	"fmt"

	"github.com/bodgit/nuru/format"
)

const (
	// Signature is the tag every image file starts with.
	Signature = "NURUIMG"
	// Version is the newest format version that can be decoded.
	Version = 1

	// MaxDimension is the largest number of columns or rows.
	MaxDimension = 1<<16 - 1

	headerSize = 32
)

// Header holds every field of an image other than its cells.
type Header struct {
	Version      uint8
	GlyphMode    Mode
	ColorMode    Mode
	MetaMode     Mode
	Cols         int
	Rows         int
	ChKey        uint8
	FgKey        uint8
	BgKey        uint8
	GlyphPalette string
	ColorPalette string
}

// CellSize returns the number of bytes each cell occupies.
func (h Header) CellSize() int {
	return int(h.GlyphMode.Width + h.ColorMode.Width + h.MetaMode.Width)
}

// Size returns the encoded size of an image with this header in bytes.
func (h Header) Size() int {
	return headerSize + h.Cols*h.Rows*h.CellSize()
}

func (h Header) validModes() error {
	for _, c := range []struct {
		name string
		mode Mode
	}{
		{"glyph", h.GlyphMode},
		{"color", h.ColorMode},
		{"metadata", h.MetaMode},
	} {
		if c.mode.Width > format.MaxWidth {
			return &format.UnsupportedModeError{Channel: c.name, Mode: c.mode.Byte()}
		}
	}
	return nil
}

// Cell is the raw stored content of one grid position.
type Cell struct {
	Glyph uint32
	Color uint32
	Meta  uint32
}

// The dimensions and cells only ever change together.
type grid struct {
	cols  int
	rows  int
	cells []Cell
}

// Image is a character grid. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Image struct {
	Version      uint8
	GlyphMode    Mode
	ColorMode    Mode
	MetaMode     Mode
	ChKey        uint8
	FgKey        uint8
	BgKey        uint8
	GlyphPalette string
	ColorPalette string

	grid grid
}

// New returns an image described by h with every cell blank. The version in h
// is ignored in favour of the current version.
func New(h Header) (*Image, error) {
	if err := h.validModes(); err != nil {
		return nil, err
	}

	m := &Image{
		Version:      Version,
		GlyphMode:    h.GlyphMode,
		ColorMode:    h.ColorMode,
		MetaMode:     h.MetaMode,
		ChKey:        h.ChKey,
		FgKey:        h.FgKey,
		BgKey:        h.BgKey,
		GlyphPalette: h.GlyphPalette,
		ColorPalette: h.ColorPalette,
	}
	if err := m.Resize(h.Cols, h.Rows); err != nil {
		return nil, err
	}
	return m, nil
}

// Header returns the header of m.
func (m *Image) Header() Header {
	return Header{
		Version:      m.Version,
		GlyphMode:    m.GlyphMode,
		ColorMode:    m.ColorMode,
		MetaMode:     m.MetaMode,
		Cols:         m.grid.cols,
		Rows:         m.grid.rows,
		ChKey:        m.ChKey,
		FgKey:        m.FgKey,
		BgKey:        m.BgKey,
		GlyphPalette: m.GlyphPalette,
		ColorPalette: m.ColorPalette,
	}
}

// Cols returns the number of columns.
func (m *Image) Cols() int {
	return m.grid.cols
}

// Rows returns the number of rows.
func (m *Image) Rows() int {
	return m.grid.rows
}

// Size returns the encoded size of m in bytes.
func (m *Image) Size() int {
	return m.Header().Size()
}

func (m *Image) String() string {
	return fmt.Sprintf("%dx%d glyph=%s color=%s meta=%s", m.grid.cols, m.grid.rows, m.GlyphMode, m.ColorMode, m.MetaMode)
}
