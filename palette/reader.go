package palette

import (
	"io"

	"github.com/bodgit/nuru/format"
)

func decode(b []byte) (*Palette, error) {
	if len(b) < headerSize {
		return nil, &format.BufferTooSmallError{Size: len(b), Min: headerSize}
	}

	if err := format.CheckSignature(b, Signature); err != nil {
		return nil, err
	}

	p := new(Palette)

	p.Version = b[7]
	if p.Version > Version {
		return nil, &format.UnsupportedVersionError{Format: Signature, Version: p.Version, Supported: Version}
	}

	p.EntrySize = b[8]
	if p.EntrySize < 1 || p.EntrySize > 3 {
		return nil, &format.UnsupportedEntrySizeError{Size: p.EntrySize}
	}

	// The whole table must be present before any entry is read
	if want := p.Size(); len(b) < want {
		return nil, &format.BufferTooSmallError{Size: len(b), Min: want}
	}

	p.ChKey = b[9]
	p.FgKey = b[10]
	p.BgKey = b[11]

	i := 12
	var err error
	if p.UserData, i, err = format.ReadInt(4, b, i); err != nil {
		return nil, err
	}

	for e := range p.Data {
		if p.Data[e], i, err = format.ReadInt(int(p.EntrySize), b, i); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Decode reads a palette from r.
func Decode(r io.Reader) (*Palette, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(b)
}

// UnmarshalBinary decodes the palette from binary form. The palette is left
// untouched if b is not a valid palette.
func (p *Palette) UnmarshalBinary(b []byte) error {
	d, err := decode(b)
	if err != nil {
		return err
	}
	*p = *d
	return nil
}
