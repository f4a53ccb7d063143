// Package layout provides big-endian byte primitives and declarative field
// layout tables for the HyperCard stack block formats.
//
// Reference: https://hypercard.org/hypercard_file_format_pierre/
package layout

import "errors"

// ErrOutOfBounds is returned by every primitive reader when the source
// slice is too short to satisfy the request.
var ErrOutOfBounds = errors.New("layout: out of bounds")

// U16 reads a big-endian uint16 from the first 2 bytes of b.
func U16(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrOutOfBounds
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// U24 reads a big-endian 24-bit value into the low 24 bits of a uint32.
func U24(b []byte) (uint32, error) {
	if len(b) < 3 {
		return 0, ErrOutOfBounds
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads a big-endian uint32 from the first 4 bytes of b.
func U32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrOutOfBounds
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// U64 reads a big-endian uint64 from the first 8 bytes of b.
func U64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrOutOfBounds
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// I16 reads a big-endian int16.
func I16(b []byte) (int16, error) {
	v, err := U16(b)
	return int16(v), err
}

// I24 reads a big-endian 24-bit two's-complement value, sign-extended to int32.
func I24(b []byte) (int32, error) {
	v, err := U24(b)
	if err != nil {
		return 0, err
	}
	if v&0x800000 != 0 {
		v |= 0xFF000000
	}
	return int32(v), nil
}

// I32 reads a big-endian int32.
func I32(b []byte) (int32, error) {
	v, err := U32(b)
	return int32(v), err
}

// I64 reads a big-endian int64.
func I64(b []byte) (int64, error) {
	v, err := U64(b)
	return int64(v), err
}
