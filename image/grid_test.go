package image

import (
	"errors"
	"testing"

	"github.com/bodgit/nuru/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeGrow(t *testing.T) {
	m := testImage(t, 2, 1, 1, 4, 4)
	old := m.Cells()
	blank := m.Blank()

	require.NoError(t, m.Resize(6, 6))
	assert.Equal(t, 6, m.Cols())
	assert.Equal(t, 6, m.Rows())
	assert.Len(t, m.Cells(), 36)

	var fresh int
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			c, ok := m.Cell(col, row)
			require.True(t, ok)
			if col < 4 && row < 4 {
				assert.Equal(t, old[row*4+col], c)
			} else {
				assert.Equal(t, blank, c)
				fresh++
			}
		}
	}
	assert.Equal(t, 20, fresh)
}

func TestResizeShrink(t *testing.T) {
	m := testImage(t, 2, 1, 1, 4, 4)
	old := m.Cells()

	require.NoError(t, m.Resize(2, 2))
	assert.Equal(t, []Cell{old[0], old[1], old[4], old[5]}, m.Cells())

	_, ok := m.Cell(2, 0)
	assert.False(t, ok)
}

func TestResizeInvalid(t *testing.T) {
	m := testImage(t, 1, 1, 1, 3, 3)
	want := m.Cells()

	for _, d := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {MaxDimension + 1, 1}} {
		err := m.Resize(d[0], d[1])
		var ie *format.InvalidArgumentError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, 3, m.Cols())
		assert.Equal(t, 3, m.Rows())
		assert.Equal(t, want, m.Cells())
	}
}

func TestGlyphValue(t *testing.T) {
	m := &Image{ChKey: 0x20}

	m.GlyphMode = ModeNone
	assert.Equal(t, uint32(0x20), m.GlyphValue('A'))

	for _, mode := range []Mode{ModeByte, ModeShort, ModeGlyphIndex} {
		m.GlyphMode = mode
		assert.Equal(t, uint32('A'), m.GlyphValue('A'))
	}
}

func TestColorValue(t *testing.T) {
	m := &Image{}

	m.ColorMode = ModeNone
	assert.Equal(t, uint32(0), m.ColorValue(10, 3))
	_, ok := m.Foreground(0xa3)
	assert.False(t, ok)
	_, ok = m.Background(0xa3)
	assert.False(t, ok)

	m.ColorMode = ModeByte
	c := m.ColorValue(10, 3)
	assert.Equal(t, uint32(0xa3), c)
	fg, ok := m.Foreground(c)
	require.True(t, ok)
	assert.Equal(t, uint32(10), fg)
	bg, ok := m.Background(c)
	require.True(t, ok)
	assert.Equal(t, uint32(3), bg)

	// Only the low nibble survives
	assert.Equal(t, uint32(0x12), m.ColorValue(0xf1, 0x22))

	for _, mode := range []Mode{ModeShort, ModeColorIndex} {
		m.ColorMode = mode
		c = m.ColorValue(0xc4, 0x1f)
		assert.Equal(t, uint32(0xc41f), c)
		fg, _ = m.Foreground(c)
		bg, _ = m.Background(c)
		assert.Equal(t, uint32(0xc4), fg)
		assert.Equal(t, uint32(0x1f), bg)
	}

	m.ColorMode = Mode{Width: 3}
	c = m.ColorValue(0xabc, 0x123)
	assert.Equal(t, uint32(0xabc123), c)
}

func TestValueDependsOnWidthOnly(t *testing.T) {
	m := &Image{ChKey: 0x20}

	// Indexed flag with a byte width other than the usual pairing
	m.GlyphMode = ParseMode(0x80)
	assert.Equal(t, uint32(0x20), m.GlyphValue('A'))
	m.GlyphMode = ParseMode(0x82)
	assert.Equal(t, uint32('A'), m.GlyphValue('A'))

	m.ColorMode = ParseMode(0x81)
	assert.Equal(t, uint32(0xa3), m.ColorValue(10, 3))
	m.ColorMode = ParseMode(0x83)
	assert.Equal(t, uint32(0x0a000b), m.ColorValue(0xa0, 0x0b))
}

func TestCellBounds(t *testing.T) {
	m := testImage(t, 1, 1, 1, 3, 2)

	for _, p := range [][2]int{{3, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		_, ok := m.Cell(p[0], p[1])
		assert.False(t, ok)

		var ie *format.InvalidArgumentError
		assert.True(t, errors.As(m.SetCell(p[0], p[1], Cell{}), &ie))
		assert.True(t, errors.As(m.SetGlyph(p[0], p[1], 1), &ie))
		assert.True(t, errors.As(m.SetColor(p[0], p[1], 1), &ie))
		assert.True(t, errors.As(m.SetMeta(p[0], p[1], 1), &ie))
	}

	c, ok := m.Cell(2, 1)
	require.True(t, ok)
	assert.Equal(t, m.Cells()[5], c)
}

func TestSetPartial(t *testing.T) {
	m := testImage(t, 2, 2, 1, 2, 2)
	c, _ := m.Cell(1, 1)

	require.NoError(t, m.SetGlyph(1, 1, 'x'))
	got, _ := m.Cell(1, 1)
	assert.Equal(t, Cell{Glyph: 'x', Color: c.Color, Meta: c.Meta}, got)

	require.NoError(t, m.SetColor(1, 1, 0x0102))
	require.NoError(t, m.SetMeta(1, 1, 9))
	got, _ = m.Cell(1, 1)
	assert.Equal(t, Cell{Glyph: 'x', Color: 0x0102, Meta: 9}, got)
}

func TestClear(t *testing.T) {
	m := testImage(t, 1, 1, 1, 3, 3)

	m.ClearWith(2, 7)
	assert.Equal(t, uint8(2), m.FgKey)
	assert.Equal(t, uint8(7), m.BgKey)
	for _, c := range m.Cells() {
		assert.Equal(t, Cell{Glyph: 0x20, Color: 0x27}, c)
	}

	m.GlyphMode = ModeNone
	m.ColorMode = ModeNone
	m.Clear()
	for _, c := range m.Cells() {
		assert.Equal(t, Cell{Glyph: 0x20}, c)
	}
}

func TestCrop(t *testing.T) {
	m, err := New(Header{
		GlyphMode: ModeShort,
		ColorMode: ModeByte,
		Cols:      8,
		Rows:      6,
		ChKey:     0x20,
		FgKey:     15,
	})
	require.NoError(t, err)

	require.NoError(t, m.Crop())
	assert.Equal(t, 1, m.Cols())
	assert.Equal(t, 1, m.Rows())

	require.NoError(t, m.Resize(8, 6))
	require.NoError(t, m.SetGlyph(4, 1, '#'))
	require.NoError(t, m.SetColor(1, 3, m.ColorValue(1, 0)))

	require.NoError(t, m.Crop())
	assert.Equal(t, 5, m.Cols())
	assert.Equal(t, 4, m.Rows())

	c, ok := m.Cell(4, 1)
	require.True(t, ok)
	assert.Equal(t, uint32('#'), c.Glyph)
}

func TestString(t *testing.T) {
	m := testImage(t, 1, 2, 0, 3, 2)
	assert.Equal(t, "3x2 glyph=1 color=2(indexed) meta=0", m.String())
}
