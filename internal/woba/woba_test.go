package woba

import (
	"bytes"
	"testing"
)

// A body of [0x82, 0x81] over an 8x8 picture rect writes one black row,
// then one white row. The remaining rows are untested since the opcode
// stream leaves them undefined in this fixture.
func TestDecode_BlackThenWhiteRow(t *testing.T) {
	rect := Rect{Top: 0, Left: 0, Bottom: 8, Right: 8}
	image, mask, err := Decode(Rect{}, rect, nil, []byte{0x82, 0x81})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if image.Width != 8 || image.Height != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", image.Width, image.Height)
	}
	row0 := image.Pix[0*image.RowBytes : 1*image.RowBytes]
	row1 := image.Pix[1*image.RowBytes : 2*image.RowBytes]
	if !bytes.Equal(row0, bytes.Repeat([]byte{0xFF}, image.RowBytes)) {
		t.Errorf("row 0 = %x, want all 0xFF", row0)
	}
	if !bytes.Equal(row1, bytes.Repeat([]byte{0x00}, image.RowBytes)) {
		t.Errorf("row 1 = %x, want all 0x00", row1)
	}

	// Mask-follows-pixels: an empty, zero-rect mask must come back
	// identical to the decoded image.
	if !bytes.Equal(mask.Pix, image.Pix) {
		t.Errorf("mask.Pix != image.Pix under mask-follows-pixels rule")
	}
	if mask.Width != image.Width || mask.Height != image.Height {
		t.Errorf("mask dims = %dx%d, want %dx%d", mask.Width, mask.Height, image.Width, image.Height)
	}
}

// Opcode sequence [0xA3, 0x81] sets repeat=3, then fills and writes
// three consecutive all-zero rows starting at the current y.
func TestDispatch_RepeatThenFillZero(t *testing.T) {
	rect := Rect{Top: 0, Left: 0, Bottom: 3, Right: 8}
	d := newPlaneDecoder(rect, []byte{0xA3, 0x81})
	if err := d.decode(); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d.release()
	if d.y != 3 {
		t.Fatalf("y = %d, want 3 rows written", d.y)
	}
	for row := 0; row < 3; row++ {
		rowBytes := d.plane.Pix[row*d.plane.RowBytes : (row+1)*d.plane.RowBytes]
		for _, b := range rowBytes {
			if b != 0 {
				t.Errorf("row %d not all-zero: %x", row, rowBytes)
			}
		}
	}
}

// A plain-rectangle mask (zero length, non-zero rect) must be filled
// with 0xFF across its declared bounds, independent of the picture data.
func TestDecode_PlainRectangleMask(t *testing.T) {
	pictureRect := Rect{Top: 0, Left: 0, Bottom: 8, Right: 8}
	maskRect := Rect{Top: 0, Left: 0, Bottom: 4, Right: 8}
	image, mask, err := Decode(maskRect, pictureRect, nil, []byte{0x81})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	_ = image
	for _, b := range mask.Pix {
		if b != 0xFF {
			t.Errorf("mask byte = %#x, want 0xFF", b)
		}
	}
	if mask.Height != 4 {
		t.Errorf("mask height = %d, want 4", mask.Height)
	}
}

// An uncompressed row copy (opcode 0x80, default repeat of 1) reproduces
// the raw input bytes verbatim.
func TestDispatch_UncompressedRow(t *testing.T) {
	rect := Rect{Top: 0, Left: 0, Bottom: 1, Right: 32}
	raw := []byte{0x12, 0x34, 0x56, 0x78}
	stream := append([]byte{0x80}, raw...)
	image, _, err := Decode(Rect{}, rect, nil, stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(image.Pix, raw) {
		t.Errorf("Pix = %x, want %x", image.Pix, raw)
	}
}

// A pattern fill (0x83) seeds pattern-memory slot y&7 for its row, and a
// pattern-repeat (0x84) fills each row from slot y&7. Row 1 reads slot 1,
// which still holds the initial checkerboard byte 0x55; row 8 reads slot 0
// again and reproduces the seeded 0x77.
func TestDispatch_PatternFillThenRepeat(t *testing.T) {
	rect := Rect{Top: 0, Left: 0, Bottom: 9, Right: 8}
	// 0x83 0x77: row 0; 0x84: row 1; 0xA6 0x81: rows 2-7 zero; 0x84: row 8.
	d := newPlaneDecoder(rect, []byte{0x83, 0x77, 0x84, 0xA6, 0x81, 0x84})
	if err := d.decode(); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d.release()
	row0 := d.plane.Pix[0:d.plane.RowBytes]
	row1 := d.plane.Pix[d.plane.RowBytes : 2*d.plane.RowBytes]
	row8 := d.plane.Pix[8*d.plane.RowBytes : 9*d.plane.RowBytes]
	for _, b := range row0 {
		if b != 0x77 {
			t.Errorf("row 0 byte = %#x, want 0x77", b)
		}
	}
	for _, b := range row1 {
		if b != 0x55 {
			t.Errorf("row 1 byte = %#x, want 0x55 (initial pattern memory, slot 1)", b)
		}
	}
	for _, b := range row8 {
		if b != 0x77 {
			t.Errorf("row 8 byte = %#x, want 0x77 (from pattern memory, slot 0)", b)
		}
	}
}

func TestRowBytesFor(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 0},
		{1, 4},
		{8, 4},
		{32, 4},
		{33, 8},
		{64, 8},
	}
	for _, tt := range tests {
		if got := rowBytesFor(tt.width); got != tt.want {
			t.Errorf("rowBytesFor(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestPlaneAt_OutOfRangeIsFalse(t *testing.T) {
	p := &Plane{Width: 8, Height: 8, RowBytes: 4, Pix: make([]byte, 32)}
	if p.At(-1, 0) || p.At(0, -1) || p.At(8, 0) || p.At(0, 8) {
		t.Error("out-of-range coordinates must report false")
	}
}

func TestDecode_TruncatedStreamFails(t *testing.T) {
	rect := Rect{Top: 0, Left: 0, Bottom: 1, Right: 32}
	// 0x80 (uncompressed row) demands rowwidth(4) bytes but none follow.
	_, _, err := Decode(Rect{}, rect, nil, []byte{0x80})
	if err != ErrTruncated {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}
