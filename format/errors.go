package format

import "fmt"

// BadSignatureError is returned when a buffer does not start with the
// expected format signature.
type BadSignatureError struct {
	Want string
	Got  string
}

func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("format: bad signature %q, expected %q", e.Got, e.Want)
}

// UnsupportedVersionError is returned when a buffer was written by a newer
// version of the format than can be parsed.
type UnsupportedVersionError struct {
	Format    string
	Version   uint8
	Supported uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("format: %s version %d is newer than supported version %d", e.Format, e.Version, e.Supported)
}

// BufferTooSmallError is returned when a buffer cannot hold the structurally
// required fields before any payload is parsed.
type BufferTooSmallError struct {
	Size int
	Min  int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("format: buffer of %d bytes is smaller than the minimum %d", e.Size, e.Min)
}

// TruncatedBufferError is returned when a buffer ends part way through the
// payload.
type TruncatedBufferError struct {
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedBufferError) Error() string {
	return fmt.Sprintf("format: truncated buffer at offset %d, need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// UnsupportedEntrySizeError is returned for a palette entry width outside of
// one to three bytes.
type UnsupportedEntrySizeError struct {
	Size uint8
}

func (e *UnsupportedEntrySizeError) Error() string {
	return fmt.Sprintf("format: unsupported palette entry size %d", e.Size)
}

// InvalidArgumentError is returned by mutating operations called with
// structurally invalid arguments.
type InvalidArgumentError struct {
	Op  string
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// UnsupportedModeError is returned when a channel mode byte asks for a width
// wider than MaxWidth bytes.
type UnsupportedModeError struct {
	Channel string
	Mode    uint8
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("format: unsupported %s mode 0x%02x", e.Channel, e.Mode)
}
