package palette

import (
	"io"

	"github.com/bodgit/nuru/format"
)

// MarshalBinary encodes the palette into binary form and returns the result.
// Entries wider than the entry size are truncated.
func (p *Palette) MarshalBinary() ([]byte, error) {
	if p.EntrySize < 1 || p.EntrySize > 3 {
		return nil, &format.UnsupportedEntrySizeError{Size: p.EntrySize}
	}

	b := make([]byte, p.Size())

	format.PutTag(b, Signature)
	b[7] = p.Version
	b[8] = p.EntrySize
	b[9] = p.ChKey
	b[10] = p.FgKey
	b[11] = p.BgKey

	i := format.WriteInt(p.UserData, 4, b, 12)
	for _, e := range p.Data {
		i = format.WriteInt(e, int(p.EntrySize), b, i)
	}

	return b, nil
}

// Encode writes the palette p to w in NURUPAL format.
func Encode(w io.Writer, p *Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
