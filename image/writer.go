package image

import (
	"io"

	"github.com/bodgit/nuru/format"
)

// MarshalBinary encodes the image into binary form and returns the result.
// Values wider than their channel are truncated.
func (m *Image) MarshalBinary() ([]byte, error) {
	h := m.Header()
	if err := h.validModes(); err != nil {
		return nil, err
	}

	b := make([]byte, h.Size())

	format.PutTag(b, Signature)
	b[7] = h.Version
	b[8] = h.GlyphMode.Byte()
	b[9] = h.ColorMode.Byte()
	b[10] = h.MetaMode.Byte()

	i := format.WriteInt(uint32(h.Cols), 2, b, 11)
	i = format.WriteInt(uint32(h.Rows), 2, b, i)

	b[i] = h.ChKey
	b[i+1] = h.FgKey
	b[i+2] = h.BgKey
	i += 3

	format.PutTag(b[i:], h.GlyphPalette)
	i += format.TagSize
	format.PutTag(b[i:], h.ColorPalette)
	i += format.TagSize

	gw, cw, mw := int(h.GlyphMode.Width), int(h.ColorMode.Width), int(h.MetaMode.Width)
	for _, c := range m.grid.cells {
		i = format.WriteInt(c.Glyph, gw, b, i)
		i = format.WriteInt(c.Color, cw, b, i)
		i = format.WriteInt(c.Meta, mw, b, i)
	}

	return b, nil
}

// Encode writes the image m to w in NURUIMG format.
func Encode(w io.Writer, m *Image) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
