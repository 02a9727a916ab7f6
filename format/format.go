/*
Package format holds the primitives shared by the NURUPAL palette and NURUIMG
image codecs.

Both formats are big-endian and start with a fixed 7 byte ASCII signature
followed by a single version byte. Integers inside the payload are packed at a
per-channel byte width of between zero and four bytes, a zero width meaning the
channel is absent and contributes no bytes at all.
*/
package format

import (
	"bytes"
	"strings"
)

// TagSize is the length of every fixed ASCII field, signatures and palette
// names alike.
const TagSize = 7

// PutTag writes s into the first TagSize bytes of b, padding with spaces if s
// is shorter and truncating it if it is longer.
func PutTag(b []byte, s string) {
	for i := 0; i < TagSize; i++ {
		if i < len(s) {
			b[i] = s[i]
		} else {
			b[i] = ' '
		}
	}
}

// Tag returns the string stored in the first TagSize bytes of b with any
// trailing padding removed.
func Tag(b []byte) string {
	return strings.TrimRight(string(b[:TagSize]), " \x00")
}

// CheckSignature verifies b starts with the signature sig.
func CheckSignature(b []byte, sig string) error {
	if len(b) < TagSize || !bytes.Equal(b[:TagSize], []byte(sig)) {
		got := b
		if len(got) > TagSize {
			got = got[:TagSize]
		}
		return &BadSignatureError{Want: sig, Got: string(got)}
	}
	return nil
}
