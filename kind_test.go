package nuru

import (
	"testing"

	"github.com/bodgit/nuru/palette"
	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		err  bool
	}{
		{"", 0, false},
		{"glyph", KindGlyph, false},
		{"Color", KindColor, false},
		{"colour", KindColor, false},
		{"font", 0, true},
	}

	for _, tt := range tests {
		k, err := ParseKind(tt.in)
		if tt.err {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, k)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "glyph", KindGlyph.String())
	assert.Equal(t, "color", KindColor.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestGuessKind(t *testing.T) {
	assert.Equal(t, KindColor, guessKind(palette.New(3)))
	assert.Equal(t, KindGlyph, guessKind(palette.New(2)))
	assert.Equal(t, KindGlyph, guessKind(palette.New(1)))
}
