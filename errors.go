package hcdecode

import (
	"fmt"

	"hypercard.dev/hcdecode/internal/layout"
)

// ErrOutOfBounds is returned whenever a slice read exceeds its buffer.
// It is recoverable inside Part decoding (see card.go) and fatal elsewhere.
var ErrOutOfBounds = layout.ErrOutOfBounds

// InvalidFileError reports that the input is not a HyperCard stack file, or
// that a structural block (STAK, MAST) could not be parsed at all.
type InvalidFileError struct {
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("hcdecode: invalid file: %s", e.Reason)
}

// UnsupportedFormatError reports a stack format code this decoder doesn't
// understand (format code >= 11, see StackFormat).
type UnsupportedFormatError struct {
	Code uint32
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("hcdecode: unsupported stack format code %d", e.Code)
}

// MalformedBlockError reports that a per-block decoder failed on internal
// structure, after the generic header was already read successfully.
type MalformedBlockError struct {
	Tag    string
	Offset int
	Detail string
	Err    error
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("hcdecode: malformed %s block at offset %#x: %s", e.Tag, e.Offset, e.Detail)
}

func (e *MalformedBlockError) Unwrap() error { return e.Err }

// MissingStyleTableError reports that no STBL block was found among the
// stack's materialized blocks. Exactly one style table is expected.
type MissingStyleTableError struct{}

func (e *MissingStyleTableError) Error() string { return "hcdecode: no style table (STBL) found" }

// EncodingError reports that a byte sequence used as a block type tag was
// not valid 7-bit ASCII.
type EncodingError struct {
	Context string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("hcdecode: invalid encoding: %s", e.Context)
}
