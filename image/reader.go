package image

import (
	"io"

	"github.com/bodgit/nuru/format"
)

func parseHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, &format.BufferTooSmallError{Size: len(b), Min: headerSize}
	}

	if err := format.CheckSignature(b, Signature); err != nil {
		return Header{}, err
	}

	h := Header{
		Version: b[7],
	}
	if h.Version > Version {
		return Header{}, &format.UnsupportedVersionError{Format: Signature, Version: h.Version, Supported: Version}
	}

	h.GlyphMode = ParseMode(b[8])
	h.ColorMode = ParseMode(b[9])
	h.MetaMode = ParseMode(b[10])
	if err := h.validModes(); err != nil {
		return Header{}, err
	}

	// The header is already known to be long enough
	cols, _, _ := format.ReadInt(2, b, 11)
	rows, _, _ := format.ReadInt(2, b, 13)
	h.Cols, h.Rows = int(cols), int(rows)

	h.ChKey = b[15]
	h.FgKey = b[16]
	h.BgKey = b[17]

	h.GlyphPalette = format.Tag(b[18:])
	h.ColorPalette = format.Tag(b[25:])

	return h, nil
}

func decode(b []byte) (*Image, error) {
	h, err := parseHeader(b)
	if err != nil {
		return nil, err
	}

	gw, cw, mw := int(h.GlyphMode.Width), int(h.ColorMode.Width), int(h.MetaMode.Width)

	// Never allocate more cells than the buffer can hold, the dimensions
	// come straight from the header
	n := h.Cols * h.Rows
	size := n
	if cs := h.CellSize(); cs > 0 {
		if avail := (len(b)-headerSize)/cs + 1; avail < size {
			size = avail
		}
	}

	cells := make([]Cell, 0, size)
	i := headerSize
	for ; n > 0; n-- {
		var c Cell
		if c.Glyph, i, err = format.ReadInt(gw, b, i); err != nil {
			return nil, err
		}
		if c.Color, i, err = format.ReadInt(cw, b, i); err != nil {
			return nil, err
		}
		if c.Meta, i, err = format.ReadInt(mw, b, i); err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}

	return &Image{
		Version:      h.Version,
		GlyphMode:    h.GlyphMode,
		ColorMode:    h.ColorMode,
		MetaMode:     h.MetaMode,
		ChKey:        h.ChKey,
		FgKey:        h.FgKey,
		BgKey:        h.BgKey,
		GlyphPalette: h.GlyphPalette,
		ColorPalette: h.ColorPalette,
		grid: grid{
			cols:  h.Cols,
			rows:  h.Rows,
			cells: cells,
		},
	}, nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(b)
}

// DecodeHeader returns the header of an image without decoding the cells.
func DecodeHeader(r io.Reader) (Header, error) {
	var b [headerSize]byte
	n, err := io.ReadFull(r, b[:])
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return Header{}, &format.BufferTooSmallError{Size: n, Min: headerSize}
	default:
		return Header{}, err
	}
	return parseHeader(b[:])
}

// UnmarshalBinary decodes the image from binary form. The image is left
// untouched if b is not a valid image.
func (m *Image) UnmarshalBinary(b []byte) error {
	d, err := decode(b)
	if err != nil {
		return err
	}
	*m = *d
	return nil
}
