package palette

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/bodgit/nuru/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(entrySize uint8) *Palette {
	p := New(entrySize)
	p.ChKey = 0x20
	p.FgKey = 0x0f
	p.BgKey = 0x01
	p.UserData = 0xcafebabe
	mask := uint32(1)<<(8*uint(entrySize)) - 1
	for i := range p.Data {
		p.Data[i] = uint32(i*7919+13) & mask
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []uint8{1, 2, 3} {
		p := testPalette(size)

		b, err := p.MarshalBinary()
		require.NoError(t, err)
		assert.Len(t, b, headerSize+Entries*int(size))
		assert.Equal(t, p.Size(), len(b))

		d, err := Decode(bytes.NewReader(b))
		require.NoError(t, err)
		assert.Equal(t, p, d)
	}
}

func TestEncodeLayout(t *testing.T) {
	p := testPalette(2)
	p.Data[0] = 0x2580
	p.Data[255] = 0x257f

	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, p))
	b := buf.Bytes()

	assert.Equal(t, []byte("NURUPAL"), b[0:7])
	assert.Equal(t, []byte{Version, 2, 0x20, 0x0f, 0x01}, b[7:12])
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, b[12:16])
	assert.Equal(t, []byte{0x25, 0x80}, b[16:18])
	assert.Equal(t, []byte{0x25, 0x7f}, b[len(b)-2:])
}

func TestEncodeTruncatesEntries(t *testing.T) {
	p := New(1)
	p.Data[0] = 0x2580

	b, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), b[headerSize])
}

func TestEncodeBadEntrySize(t *testing.T) {
	for _, size := range []uint8{0, 4} {
		_, err := New(size).MarshalBinary()
		var ee *format.UnsupportedEntrySizeError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, size, ee.Size)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid, err := testPalette(2).MarshalBinary()
	require.NoError(t, err)

	badSignature := append([]byte("XXXXXXX"), valid[7:]...)

	newer := append([]byte(nil), valid...)
	newer[7] = Version + 1

	badSize := append([]byte(nil), valid...)
	badSize[8] = 4

	wide := append([]byte(nil), valid...)
	wide[8] = 3

	tests := []struct {
		name   string
		input  []byte
		target interface{}
	}{
		{"Empty", nil, new(*format.BufferTooSmallError)},
		{"HeaderOnly", valid[:headerSize-1], new(*format.BufferTooSmallError)},
		{"BadSignature", badSignature, new(*format.BadSignatureError)},
		{"NewerVersion", newer, new(*format.UnsupportedVersionError)},
		{"BadEntrySize", badSize, new(*format.UnsupportedEntrySizeError)},
		{"ShortPayload", valid[:len(valid)-1], new(*format.BufferTooSmallError)},
		{"WiderThanPayload", wide, new(*format.BufferTooSmallError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.As(err, tt.target), "unexpected error %v", err)
		})
	}
}

func TestUnmarshalBinaryLeavesPaletteOnError(t *testing.T) {
	p := testPalette(3)
	want := *p

	b, err := testPalette(1).MarshalBinary()
	require.NoError(t, err)
	copy(b, "XXXXXXX")

	require.Error(t, p.UnmarshalBinary(b))
	assert.Equal(t, want, *p)

	copy(b, Signature)
	require.NoError(t, p.UnmarshalBinary(b))
	assert.Equal(t, *testPalette(1), *p)
}

func TestDecodeIgnoresTrailingData(t *testing.T) {
	b, err := testPalette(1).MarshalBinary()
	require.NoError(t, err)

	p, err := Decode(bytes.NewReader(append(b, 0xff, 0xff)))
	require.NoError(t, err)
	assert.Equal(t, testPalette(1), p)
}

func TestLookups(t *testing.T) {
	p, ok := Builtin(ANSI4)
	require.True(t, ok)

	assert.Equal(t, color.RGBA{0xcd, 0x00, 0x00, 0xff}, p.Color(1))
	assert.Equal(t, color.RGBA{0x5c, 0x5c, 0xff, 0xff}, p.Color(12))

	i, ok := p.Index(0xffffff)
	require.True(t, ok)
	assert.Equal(t, uint8(15), i)

	_, ok = p.Index(0x123456)
	assert.False(t, ok)

	cp := p.ColorPalette(16)
	assert.Len(t, cp, 16)
	assert.Equal(t, color.Color(color.RGBA{0xff, 0xff, 0xff, 0xff}), cp[15])

	g, ok := Builtin(NuruStd)
	require.True(t, ok)
	assert.Equal(t, ' ', g.Blank())
	assert.Equal(t, '▀', g.Glyph(0))
	assert.Equal(t, '█', g.Glyph(8))
	assert.Equal(t, 'A', g.Glyph('A'))
	assert.Equal(t, '⌂', g.Glyph(0x7f))
	assert.Equal(t, '─', g.Glyph(0x80))
	assert.Equal(t, uint32('╿'), g.Codepoint(0xff))
}

func TestFromColorPalette(t *testing.T) {
	p := FromColorPalette(color.Palette{
		color.RGBA{0x12, 0x34, 0x56, 0xff},
		color.Gray{0x80},
	})
	assert.Equal(t, uint8(3), p.EntrySize)
	assert.Equal(t, uint8(Version), p.Version)
	assert.Equal(t, uint32(0x123456), p.Data[0])
	assert.Equal(t, uint32(0x808080), p.Data[1])
	assert.Equal(t, uint32(0), p.Data[2])
}

func TestPrintable(t *testing.T) {
	assert.False(t, Printable(0x00))
	assert.False(t, Printable(0x1f))
	assert.True(t, Printable(0x20))
	assert.True(t, Printable(0x7e))
	assert.False(t, Printable(0x7f))
	assert.False(t, Printable(0x9f))
	assert.True(t, Printable(0xa0))
	assert.True(t, Printable(0x2588))
}
