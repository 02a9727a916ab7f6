package image

import (
	"fmt"

	"github.com/bodgit/nuru/format"
)

// GlyphValue returns the value stored for the glyph ch under the current glyph
// mode. Without a glyph channel every cell holds the blank glyph.
func (m *Image) GlyphValue(ch uint32) uint32 {
	if m.GlyphMode.Width == 0 {
		return uint32(m.ChKey)
	}
	return ch
}

// ColorValue packs the foreground fg and background bg into the value stored
// under the current color mode. Without a color channel the value is always
// zero.
func (m *Image) ColorValue(fg, bg uint32) uint32 {
	shift, mask := m.ColorMode.split()
	return (fg&mask)<<shift | bg&mask
}

// Foreground extracts the foreground from the packed color c. It returns false
// if there is no color channel.
func (m *Image) Foreground(c uint32) (uint32, bool) {
	if m.ColorMode.Width == 0 {
		return 0, false
	}
	shift, mask := m.ColorMode.split()
	return c >> shift & mask, true
}

// Background extracts the background from the packed color c. It returns false
// if there is no color channel.
func (m *Image) Background(c uint32) (uint32, bool) {
	if m.ColorMode.Width == 0 {
		return 0, false
	}
	_, mask := m.ColorMode.split()
	return c & mask, true
}

// Blank returns the cell used to fill empty space for the current keys and
// modes.
func (m *Image) Blank() Cell {
	return Cell{
		Glyph: m.GlyphValue(uint32(m.ChKey)),
		Color: m.ColorValue(uint32(m.FgKey), uint32(m.BgKey)),
	}
}

func (m *Image) index(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= m.grid.cols || row >= m.grid.rows {
		return 0, false
	}
	return row*m.grid.cols + col, true
}

// Cell returns the cell at col, row. It returns false if the position is
// outside of the image, which is expected while the image is being resized.
func (m *Image) Cell(col, row int) (Cell, bool) {
	i, ok := m.index(col, row)
	if !ok {
		return Cell{}, false
	}
	return m.grid.cells[i], true
}

// Cells returns a copy of every cell in row-major order.
func (m *Image) Cells() []Cell {
	return append([]Cell(nil), m.grid.cells...)
}

func (m *Image) cell(op string, col, row int) (*Cell, error) {
	i, ok := m.index(col, row)
	if !ok {
		return nil, &format.InvalidArgumentError{
			Op:  op,
			Msg: fmt.Sprintf("position %d,%d outside of %dx%d image", col, row, m.grid.cols, m.grid.rows),
		}
	}
	return &m.grid.cells[i], nil
}

// SetCell replaces the cell at col, row.
func (m *Image) SetCell(col, row int, c Cell) error {
	p, err := m.cell("image: set cell", col, row)
	if err != nil {
		return err
	}
	*p = c
	return nil
}

// SetGlyph replaces only the glyph of the cell at col, row.
func (m *Image) SetGlyph(col, row int, glyph uint32) error {
	p, err := m.cell("image: set glyph", col, row)
	if err != nil {
		return err
	}
	p.Glyph = glyph
	return nil
}

// SetColor replaces only the color of the cell at col, row.
func (m *Image) SetColor(col, row int, color uint32) error {
	p, err := m.cell("image: set color", col, row)
	if err != nil {
		return err
	}
	p.Color = color
	return nil
}

// SetMeta replaces only the metadata of the cell at col, row.
func (m *Image) SetMeta(col, row int, meta uint32) error {
	p, err := m.cell("image: set meta", col, row)
	if err != nil {
		return err
	}
	p.Meta = meta
	return nil
}

// Resize changes the dimensions of the image. Cells present in both the old
// and new dimensions keep their content, any new cells are blank.
func (m *Image) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 || cols > MaxDimension || rows > MaxDimension {
		return &format.InvalidArgumentError{
			Op:  "image: resize",
			Msg: fmt.Sprintf("invalid dimensions %dx%d", cols, rows),
		}
	}

	blank := m.Blank()
	cells := make([]Cell, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if c, ok := m.Cell(col, row); ok {
				cells[row*cols+col] = c
			} else {
				cells[row*cols+col] = blank
			}
		}
	}

	m.grid = grid{cols: cols, rows: rows, cells: cells}

	return nil
}

// Clear sets every cell to the blank cell.
func (m *Image) Clear() {
	blank := m.Blank()
	cells := make([]Cell, len(m.grid.cells))
	for i := range cells {
		cells[i] = blank
	}
	m.grid.cells = cells
}

// ClearWith changes the default foreground and background before clearing.
func (m *Image) ClearWith(fgKey, bgKey uint8) {
	m.FgKey = fgKey
	m.BgKey = bgKey
	m.Clear()
}

// Crop shrinks the image to the smallest size anchored at the top left
// corner that still holds every non-blank cell. An entirely blank image is
// cropped to a single cell.
func (m *Image) Crop() error {
	blank := m.Blank()
	cols, rows := 1, 1
	for row := 0; row < m.grid.rows; row++ {
		for col := 0; col < m.grid.cols; col++ {
			if m.grid.cells[row*m.grid.cols+col] != blank {
				if col+1 > cols {
					cols = col + 1
				}
				if row+1 > rows {
					rows = row + 1
				}
			}
		}
	}
	if cols == m.grid.cols && rows == m.grid.rows {
		return nil
	}
	return m.Resize(cols, rows)
}
