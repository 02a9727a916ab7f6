package nuru

import (
	"fmt"
	"strings"

	"github.com/bodgit/nuru/palette"
)

// Kind is what the entries of a palette represent.
type Kind int

// Palette kinds.
const (
	KindGlyph Kind = iota + 1
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindGlyph:
		return "glyph"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the Kind named by s. An empty string returns zero, meaning
// the kind should be guessed from the palette.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "glyph":
		return KindGlyph, nil
	case "color", "colour":
		return KindColor, nil
	default:
		return 0, fmt.Errorf("unknown palette kind %q", s)
	}
}

// Three byte entries only make sense as RGB values
func guessKind(p *palette.Palette) Kind {
	if p.EntrySize == 3 {
		return KindColor
	}
	return KindGlyph
}
