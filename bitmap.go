package hcdecode

import (
	"hypercard.dev/hcdecode/internal/layout"
	"hypercard.dev/hcdecode/internal/woba"
)

// GrayImage is a 1-bit image carried as one grayscale byte per pixel
// (0x00 black, 0xFF white), the sink format this decoder targets.
type GrayImage struct {
	Width, Height int
	Pix           []byte
}

func grayImageFromPlane(p *woba.Plane) GrayImage {
	img := GrayImage{Width: p.Width, Height: p.Height, Pix: make([]byte, p.Width*p.Height)}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			v := byte(0x00)
			if p.At(x, y) {
				v = 0xFF
			}
			img.Pix[y*p.Width+x] = v
		}
	}
	return img
}

// Bitmap is a decoded BMAP block: an image plane, an optional mask plane,
// and the bounding rectangles the format header carried.
type Bitmap struct {
	TotalRect   Rect
	MaskRect    Rect
	PictureRect Rect

	Image GrayImage
	Mask  GrayImage
}

// decodeBitmap decodes a BMAP block's WOBA-compressed payload.
//
// The WOBA picture header sits immediately after the 12-byte
// size+type+id prefix of the generic block header, not after its full
// 16 bytes.
func decodeBitmap(chunk []byte) (*Bitmap, error) {
	const headerStart = 12
	if headerStart > len(chunk) {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "block shorter than generic prefix", Err: ErrOutOfBounds}
	}
	h := chunk[headerStart:]
	t := layout.WobaHeader

	totalRect, err := readWobaRect(h, t, "TotalRectTop", "TotalRectLeft", "TotalRectBottom", "TotalRectRight")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading total rect", Err: err}
	}
	maskRect, err := readWobaRect(h, t, "MaskRectTop", "MaskRectLeft", "MaskRectBottom", "MaskRectRight")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading mask rect", Err: err}
	}
	pictureRect, err := readWobaRect(h, t, "PictureRectTop", "PictureRectLeft", "PictureRectBottom", "PictureRectRight")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading picture rect", Err: err}
	}

	maskLenField, err := t.Slice(h, 0, "MaskDataLength")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading mask data length", Err: err}
	}
	maskLen, err := layout.U32(maskLenField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading mask data length", Err: err}
	}
	pictureLenField, err := t.Slice(h, 0, "PictureDataLength")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading picture data length", Err: err}
	}
	pictureLen, err := layout.U32(pictureLenField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "reading picture data length", Err: err}
	}

	streamStart := headerStart + t.End("PictureDataLength")
	if streamStart+int(maskLen)+int(pictureLen) > len(chunk) {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "mask/picture stream runs past end of block", Err: ErrOutOfBounds}
	}
	maskData := chunk[streamStart : streamStart+int(maskLen)]
	pictureData := chunk[streamStart+int(maskLen) : streamStart+int(maskLen)+int(pictureLen)]

	imagePlane, maskPlane, err := woba.Decode(
		woba.Rect(maskRect), woba.Rect(pictureRect),
		maskData, pictureData,
	)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BMAP", Detail: "decoding WOBA stream", Err: err}
	}

	return &Bitmap{
		TotalRect:   totalRect,
		MaskRect:    maskRect,
		PictureRect: pictureRect,
		Image:       grayImageFromPlane(imagePlane),
		Mask:        grayImageFromPlane(maskPlane),
	}, nil
}

func readWobaRect(b []byte, t layout.Table, top, left, bottom, right string) (Rect, error) {
	return readRect(b, t, top, left, bottom, right)
}
