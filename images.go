package nuru

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/nuru/format"
	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
	"github.com/bodgit/nuru/raster"
)

// Info describes either a palette or an image file.
type Info struct {
	File    string
	Palette *palette.Palette
	Image   *image.Header
}

func (i *Info) String() string {
	var b strings.Builder
	switch {
	case i.Palette != nil:
		p := i.Palette
		fmt.Fprintf(&b, "%s: %s version %d\n", i.File, palette.Signature, p.Version)
		fmt.Fprintf(&b, "entry size: %d\n", p.EntrySize)
		fmt.Fprintf(&b, "keys: glyph=%d fg=%d bg=%d\n", p.ChKey, p.FgKey, p.BgKey)
		fmt.Fprintf(&b, "user data: 0x%08x\n", p.UserData)
	case i.Image != nil:
		h := i.Image
		fmt.Fprintf(&b, "%s: %s version %d\n", i.File, image.Signature, h.Version)
		fmt.Fprintf(&b, "size: %dx%d\n", h.Cols, h.Rows)
		fmt.Fprintf(&b, "modes: glyph=%s color=%s meta=%s\n", h.GlyphMode, h.ColorMode, h.MetaMode)
		fmt.Fprintf(&b, "keys: glyph=%d fg=%d bg=%d\n", h.ChKey, h.FgKey, h.BgKey)
		fmt.Fprintf(&b, "palettes: glyph=%q color=%q\n", h.GlyphPalette, h.ColorPalette)
	}
	return b.String()
}

// Info describes file as either format. Only the header of an image is read.
func (n *Nuru) Info(file string) (*Info, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	sig, err := r.Peek(format.TagSize)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch string(sig) {
	case palette.Signature:
		p, err := palette.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		return &Info{File: file, Palette: p}, nil
	case image.Signature:
		h, err := image.DecodeHeader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		return &Info{File: file, Image: &h}, nil
	default:
		return nil, fmt.Errorf("%s: %w", file, &format.BadSignatureError{Want: palette.Signature + " or " + image.Signature, Got: string(sig)})
	}
}

func readImage(file string) (*image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

func (n *Nuru) editImage(file string, fn func(*image.Image) error) error {
	m, err := readImage(file)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	return writeFile(file, m)
}

// NewImage writes a blank image described by h to file.
func (n *Nuru) NewImage(file string, h image.Header) error {
	m, err := image.New(h)
	if err != nil {
		return err
	}
	return writeFile(file, m)
}

// ResizeImage resizes the image in file.
func (n *Nuru) ResizeImage(file string, cols, rows int) error {
	return n.editImage(file, func(m *image.Image) error {
		n.logger.Printf("Resizing \"%s\" from %dx%d to %dx%d\n", file, m.Cols(), m.Rows(), cols, rows)
		return m.Resize(cols, rows)
	})
}

// CropImage crops the image in file to its content.
func (n *Nuru) CropImage(file string) error {
	return n.editImage(file, func(m *image.Image) error {
		if err := m.Crop(); err != nil {
			return err
		}
		n.logger.Printf("Cropped \"%s\" to %dx%d\n", file, m.Cols(), m.Rows())
		return nil
	})
}

// ClearImage blanks every cell of the image in file.
func (n *Nuru) ClearImage(file string) error {
	return n.editImage(file, func(m *image.Image) error {
		m.Clear()
		return nil
	})
}

// ImagePalettes returns the glyph and color palettes named by m, either of
// which is nil if the image names no palette or it cannot be found.
func (n *Nuru) ImagePalettes(m *image.Image) (*palette.Palette, *palette.Palette, error) {
	var pals [2]*palette.Palette
	for i, name := range []string{m.GlyphPalette, m.ColorPalette} {
		if name == "" {
			continue
		}
		p, err := n.Palette(name)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			n.logger.Printf("No palette \"%s\"\n", name)
		}
		pals[i] = p
	}
	return pals[0], pals[1], nil
}

// ConvertOptions control converting a picture into an image.
type ConvertOptions struct {
	// Cols limits the width of the image, zero means no limit.
	Cols int
	// Colors limits the number of colors, zero means 256.
	Colors int
	// GlyphPalette names the glyph palette, nurustd if empty.
	GlyphPalette string
	// ColorPalette names the generated color palette, derived from the
	// destination file name if empty.
	ColorPalette string
	// PaletteFile, if set, also receives the generated color palette.
	PaletteFile string
}

// Convert converts the picture in src into an image written to dst, storing
// the generated color palette in the library.
func (n *Nuru) Convert(src, dst string, opts ConvertOptions) error {
	if opts.GlyphPalette == "" {
		opts.GlyphPalette = palette.NuruStd
	}
	if opts.ColorPalette == "" {
		opts.ColorPalette = PaletteName(dst)
	}

	glyphs, err := n.Palette(opts.GlyphPalette)
	if err != nil {
		return err
	}
	if glyphs == nil {
		return fmt.Errorf("%s: %w", opts.GlyphPalette, errNotFound)
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	pic, kind, err := raster.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	n.logger.Printf("Converting %s picture \"%s\"\n", kind, src)

	m, colors, err := raster.Convert(pic, raster.Options{
		Cols:         opts.Cols,
		Colors:       opts.Colors,
		Glyphs:       glyphs,
		GlyphPalette: opts.GlyphPalette,
		ColorPalette: opts.ColorPalette,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	if _, err := n.lib.AddPalette(opts.ColorPalette, KindColor, colors); err != nil {
		return err
	}

	if opts.PaletteFile != "" {
		if err := writeFile(opts.PaletteFile, colors); err != nil {
			return err
		}
	}

	return writeFile(dst, m)
}
