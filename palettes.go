package nuru

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/nuru/format"
	"github.com/bodgit/nuru/palette"
)

// PaletteName derives a palette name from a file name by taking up to the
// first seven printable characters of the base name, lowercased.
func PaletteName(file string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))

	var b strings.Builder
	for i := 0; i < len(base) && b.Len() < format.TagSize; i++ {
		if base[i] > ' ' && base[i] <= '~' {
			b.WriteByte(base[i])
		}
	}
	return b.String()
}

// Palette returns the named palette from the library, falling back to the
// built-in palettes. It returns nil if neither has the name.
func (n *Nuru) Palette(name string) (*palette.Palette, error) {
	p, err := n.lib.FindPalette(name)
	if err != nil || p != nil {
		return p, err
	}
	if p, ok := palette.Builtin(name); ok {
		return p, nil
	}
	return nil, nil
}

// Palettes lists the palettes in the library followed by any built-in
// palettes not overridden by the library.
func (n *Nuru) Palettes() ([]Entry, error) {
	entries, err := n.lib.Palettes()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Name] = struct{}{}
	}

	for _, name := range palette.BuiltinNames() {
		if _, ok := seen[name]; ok {
			continue
		}
		p, _ := palette.Builtin(name)
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Name:      name,
			Kind:      guessKind(p),
			EntrySize: p.EntrySize,
			UUID:      contentID(b),
			Builtin:   true,
		})
	}

	return entries, nil
}

// ImportPalette adds the palette in file to the library. If name is empty it
// is derived from the file name. It returns the name used.
func (n *Nuru) ImportPalette(file, name string, kind Kind) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	p := new(palette.Palette)
	if err := p.UnmarshalBinary(b); err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}

	if name == "" {
		name = PaletteName(file)
	}

	id, err := n.lib.AddPalette(name, kind, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	n.logger.Printf("Imported \"%s\" as \"%s\" (%s)\n", file, name, id)

	return name, nil
}

// ExportPalette writes the named palette to file.
func (n *Nuru) ExportPalette(name, file string) error {
	p, err := n.Palette(name)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%s: %w", name, errNotFound)
	}
	return writeFile(file, p)
}

// DeletePalette removes the named palette from the library.
func (n *Nuru) DeletePalette(name string) error {
	ok, err := n.lib.DeletePalette(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", name, errNotFound)
	}
	return nil
}
