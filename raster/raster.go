/*
Package raster converts pictures into character grid images.

Every cell covers one column and two rows of pixels and is drawn with the
upper half block glyph, the foreground color painting the top pixel and the
background color the bottom one. The picture colors are reduced with a median
cut quantizer to at most 256 colors which become the generated color palette
the cells index into.
*/
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"

	nuruimg "github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

const (
	upperHalfBlock = 0x2580
	maxColors      = palette.Entries
)

var (
	errEmpty    = errors.New("raster: picture is empty")
	errNoBlock  = errors.New("raster: glyph palette has no upper half block")
	errTooLarge = errors.New("raster: picture is too large")
)

// Options control the conversion.
type Options struct {
	// Cols limits the width of the result, the picture is scaled down
	// preserving its aspect ratio if it is wider. Zero means no limit.
	Cols int
	// Colors limits the size of the generated palette, zero or anything
	// above 256 means 256.
	Colors int
	// Glyphs is the glyph palette the cells index into, the built-in
	// nurustd palette if nil.
	Glyphs *palette.Palette
	// GlyphPalette and ColorPalette are the palette names recorded in the
	// image.
	GlyphPalette string
	ColorPalette string
}

// Load decodes a picture in any of the registered formats.
func Load(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Colors in order of first appearance, or false if there are more than limit
func uniqueColors(m image.Image, limit int) (color.Palette, bool) {
	b := m.Bounds()
	seen := make(map[color.RGBA]struct{})
	var p color.Palette
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	return p, true
}

func quantizePicture(m image.Image, n int) *image.Paletted {
	b := m.Bounds()

	p, ok := uniqueColors(m, n)
	if !ok {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, n), m)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Convert returns the picture m as an image along with the generated color
// palette.
func Convert(m image.Image, opts Options) (*nuruimg.Image, *palette.Palette, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, nil, errEmpty
	}

	if opts.Cols > 0 && b.Dx() > opts.Cols {
		m = resize.Resize(uint(opts.Cols), 0, m, resize.NearestNeighbor)
		b = m.Bounds()
	}

	cols, rows := b.Dx(), (b.Dy()+1)/2
	if cols > nuruimg.MaxDimension || rows > nuruimg.MaxDimension {
		return nil, nil, errTooLarge
	}

	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs, _ = palette.Builtin(palette.NuruStd)
	}
	block, ok := glyphs.Index(upperHalfBlock)
	if !ok {
		return nil, nil, errNoBlock
	}

	n := opts.Colors
	if n <= 0 || n > maxColors {
		n = maxColors
	}
	pm := quantizePicture(m, n)

	img, err := nuruimg.New(nuruimg.Header{
		GlyphMode:    nuruimg.ModeGlyphIndex,
		ColorMode:    nuruimg.ModeColorIndex,
		MetaMode:     nuruimg.ModeNone,
		Cols:         cols,
		Rows:         rows,
		ChKey:        glyphs.ChKey,
		GlyphPalette: opts.GlyphPalette,
		ColorPalette: opts.ColorPalette,
	})
	if err != nil {
		return nil, nil, err
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := b.Min.X+col, b.Min.Y+row*2

			fg := pm.ColorIndexAt(x, y)
			bg := fg
			if y+1 < b.Max.Y {
				bg = pm.ColorIndexAt(x, y+1)
			}

			if err := img.SetCell(col, row, nuruimg.Cell{
				Glyph: uint32(block),
				Color: img.ColorValue(uint32(fg), uint32(bg)),
			}); err != nil {
				return nil, nil, err
			}
		}
	}

	return img, palette.FromColorPalette(pm.Palette), nil
}
