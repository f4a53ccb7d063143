package hcdecode

import (
	"io"
	"log"
)

// discardLogger returns a *log.Logger that throws away everything it's
// given, for tests that exercise non-fatal diagnostic paths without
// wanting the noise in test output.
func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Shared byte-buffer construction helpers for the end-to-end scenario
// tests. These build minimal, deliberately sparse stack files by poking
// fields directly at their known offsets, mirroring how a real stack
// file is just a flat byte layout.

func putU32(b []byte, offset int, v uint32) {
	b[offset] = byte(v >> 24)
	b[offset+1] = byte(v >> 16)
	b[offset+2] = byte(v >> 8)
	b[offset+3] = byte(v)
}

func putU16(b []byte, offset int, v uint16) {
	b[offset] = byte(v >> 8)
	b[offset+1] = byte(v)
}

func putU24(b []byte, offset int, v uint32) {
	b[offset] = byte(v >> 16)
	b[offset+1] = byte(v >> 8)
	b[offset+2] = byte(v)
}

// newMinimalStack returns a zero-filled buffer of the given size with a
// valid STAK generic header at offset 0 (size, "STAK" tag, id, filler) and
// everything else left zero, which is itself a legal (if degenerate)
// stack: format NotHyperCard, empty global script, and a MAST block
// expected at the 0x200-rounded offset following it (0x800, since the
// empty script terminates at 0x601).
func newMinimalStack(size int) []byte {
	b := make([]byte, size)
	putU32(b, 0, 0x80)
	copy(b[4:8], "STAK")
	putU32(b, 8, 1)
	return b
}

// writeGenericHeader writes the 16-byte generic block header at offset.
func writeGenericHeader(b []byte, offset int, blockSize uint32, tag string, id uint32) {
	putU32(b, offset, blockSize)
	copy(b[offset+4:offset+8], tag)
	putU32(b, offset+8, id)
}
