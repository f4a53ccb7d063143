package layout

import (
	"math/rand"
	"testing"
)

func beBytes32(x uint32) []byte {
	return []byte{byte(x >> 24), byte(x >> 16), byte(x >> 8), byte(x)}
}

func beBytes16(x uint16) []byte {
	return []byte{byte(x >> 8), byte(x)}
}

func beBytes64(x uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(x >> uint(56-8*i))
	}
	return b
}

// Big-endian round-trip for u16, u32, u64, and u24 (masked to
// 24 bits).
func TestRoundTrip_U32(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 256; i++ {
		x := rng.Uint32()
		got, err := U32(beBytes32(x))
		if err != nil {
			t.Fatalf("U32: %v", err)
		}
		if got != x {
			t.Errorf("U32 round-trip: got %#x, want %#x", got, x)
		}
	}
}

func TestRoundTrip_U16(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 256; i++ {
		x := uint16(rng.Uint32())
		got, err := U16(beBytes16(x))
		if err != nil {
			t.Fatalf("U16: %v", err)
		}
		if got != x {
			t.Errorf("U16 round-trip: got %#x, want %#x", got, x)
		}
	}
}

func TestRoundTrip_U64(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 256; i++ {
		x := rng.Uint64()
		got, err := U64(beBytes64(x))
		if err != nil {
			t.Fatalf("U64: %v", err)
		}
		if got != x {
			t.Errorf("U64 round-trip: got %#x, want %#x", got, x)
		}
	}
}

func TestRoundTrip_U24_MaskedTo24Bits(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 256; i++ {
		x := rng.Uint32() & 0xFFFFFF
		b := []byte{byte(x >> 16), byte(x >> 8), byte(x)}
		got, err := U24(b)
		if err != nil {
			t.Fatalf("U24: %v", err)
		}
		if got != x {
			t.Errorf("U24 round-trip: got %#x, want %#x", got, x)
		}
	}
}

func TestSignedReaders(t *testing.T) {
	i16, err := I16(beBytes16(0xFFFE)) // -2
	if err != nil || i16 != -2 {
		t.Errorf("I16(0xFFFE) = %d, %v, want -2, nil", i16, err)
	}
	i32, err := I32(beBytes32(0xFFFFFFFE)) // -2
	if err != nil || i32 != -2 {
		t.Errorf("I32(0xFFFFFFFE) = %d, %v, want -2, nil", i32, err)
	}
	i64, err := I64(beBytes64(0xFFFFFFFFFFFFFFFE)) // -2
	if err != nil || i64 != -2 {
		t.Errorf("I64 = %d, %v, want -2, nil", i64, err)
	}
	i24, err := I24([]byte{0xFF, 0xFF, 0xFE}) // -2, sign-extended
	if err != nil || i24 != -2 {
		t.Errorf("I24(0xFFFFFE) = %d, %v, want -2, nil", i24, err)
	}
	i24pos, err := I24([]byte{0x00, 0x01, 0x00})
	if err != nil || i24pos != 0x100 {
		t.Errorf("I24(0x000100) = %d, %v, want 256, nil", i24pos, err)
	}
}

// Every reader must fail with ErrOutOfBounds when the slice is shorter
// than required, rather than panicking.
func TestReaders_OutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		fn   func([]byte) error
	}{
		{"U16", func(b []byte) error { _, err := U16(b); return err }},
		{"U24", func(b []byte) error { _, err := U24(b); return err }},
		{"U32", func(b []byte) error { _, err := U32(b); return err }},
		{"U64", func(b []byte) error { _, err := U64(b); return err }},
		{"I16", func(b []byte) error { _, err := I16(b); return err }},
		{"I24", func(b []byte) error { _, err := I24(b); return err }},
		{"I32", func(b []byte) error { _, err := I32(b); return err }},
		{"I64", func(b []byte) error { _, err := I64(b); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.fn(nil); err != ErrOutOfBounds {
				t.Errorf("%s(nil) = %v, want ErrOutOfBounds", c.name, err)
			}
			if err := c.fn([]byte{0x01}); err != ErrOutOfBounds {
				t.Errorf("%s([1 byte]) = %v, want ErrOutOfBounds", c.name, err)
			}
		})
	}
}

func TestTable_StartEndSlice(t *testing.T) {
	tbl := build(e("A", 2), e("B", 4), e("C", 1))
	if tbl.Start("B") != 2 || tbl.End("B") != 6 {
		t.Errorf("B = [%d,%d), want [2,6)", tbl.Start("B"), tbl.End("B"))
	}
	buf := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	s, err := tbl.Slice(buf, 0, "B")
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if len(s) != 4 || s[0] != 2 {
		t.Errorf("Slice(B) = %v, want [2 3 4 5]", s)
	}

	if _, err := tbl.Slice(buf, 4, "C"); err != ErrOutOfBounds {
		t.Errorf("Slice with offset past end = %v, want ErrOutOfBounds", err)
	}
}

func TestTable_UnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Start of unknown field should panic")
		}
	}()
	build(e("A", 1)).Start("Nope")
}
