package hcdecode

import (
	"hypercard.dev/hcdecode/internal/layout"
)

// PartType discriminates a button from a field.
type PartType int

const (
	PartTypeUnknown PartType = iota
	PartTypeButton
	PartTypeField
)

// PartStyle is the visual chrome a Part renders with.
type PartStyle int

const (
	PartStyleTransparent PartStyle = iota
	PartStyleOpaque
	PartStyleRectangle
	PartStyleRoundRectangle
	PartStyleShadow
	PartStyleCheckbox
	PartStyleRadio
	PartStyleScrolling
	PartStyleStandard
	PartStyleDefault
	PartStyleOval
	PartStylePopup
	PartStyleUnknown
)

func partStyleFromByte(b byte) PartStyle {
	switch b {
	case 0:
		return PartStyleTransparent
	case 1:
		return PartStyleOpaque
	case 2:
		return PartStyleRectangle
	case 3:
		return PartStyleRoundRectangle
	case 4:
		return PartStyleShadow
	case 5:
		return PartStyleCheckbox
	case 6:
		return PartStyleRadio
	case 7:
		return PartStyleScrolling
	case 8:
		return PartStyleStandard
	case 9:
		return PartStyleDefault
	case 10:
		return PartStyleOval
	case 11:
		return PartStylePopup
	default:
		return PartStyleUnknown
	}
}

// TextAlignment is a Part's text justification.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignForceLeft
	AlignForceCenter
	AlignForceRight
	AlignUnknown
)

func textAlignmentFromI16(v int16) TextAlignment {
	switch v {
	case 0:
		return AlignLeft
	case 1:
		return AlignCenter
	case -1:
		return AlignRight
	case -2:
		return AlignForceLeft
	case -3:
		return AlignForceCenter
	case -4:
		return AlignForceRight
	default:
		return AlignUnknown
	}
}

// ContentEntryStyle is one text-position/style-id pair inside a
// ContentEntry's style run.
type ContentEntryStyle struct {
	TextPosition uint16
	StyleID      uint16
}

// ContentEntry is one of a Part's content records.
type ContentEntry struct {
	ID     uint16
	Styles []ContentEntryStyle
	Text   string
}

// Part is a button or field.
type Part struct {
	ID    uint16
	Type  PartType
	Rect  Rect
	Style PartStyle

	TitleWidth int16
	Alignment  TextAlignment
	FontID     int16
	FontSize   int16
	TextFlags  byte
	LineHeight int16

	Name   string
	Script string

	Contents []ContentEntry
}

// decodePart parses one Part record. b must start at the Part's
// PartEntrySize field; it may extend past the Part's own declared length
// (the Card/Background tail retries with an open-ended slice on
// OutOfBounds).
func decodePart(b []byte, partContentNum uint16, partContentListSize uint32) (*Part, error) {
	t := layout.PartLayout

	idField, err := t.Slice(b, 0, "PartID")
	if err != nil {
		return nil, err
	}
	id, err := layout.U16(idField)
	if err != nil {
		return nil, err
	}

	typeField, err := t.Slice(b, 0, "PartType")
	if err != nil {
		return nil, err
	}
	partType := PartTypeUnknown
	switch typeField[0] {
	case 1:
		partType = PartTypeButton
	case 2:
		partType = PartTypeField
	}

	rect, err := readRect(b, t, "PartRectTop", "PartRectLeft", "PartRectBottom", "PartRectRight")
	if err != nil {
		return nil, err
	}

	styleField, err := t.Slice(b, 0, "Style")
	if err != nil {
		return nil, err
	}
	style := partStyleFromByte(styleField[0])

	titleWidth, err := readI16Field(b, t, "TitleWidthOrLastSelectedLine")
	if err != nil {
		return nil, err
	}
	alignmentRaw, err := readI16Field(b, t, "TextAlignment")
	if err != nil {
		return nil, err
	}
	fontID, err := readI16Field(b, t, "TextFontID")
	if err != nil {
		return nil, err
	}
	fontSize, err := readI16Field(b, t, "TextSize")
	if err != nil {
		return nil, err
	}
	textFlagsField, err := t.Slice(b, 0, "TextFlags")
	if err != nil {
		return nil, err
	}
	lineHeight, err := readI16Field(b, t, "LineHeight")
	if err != nil {
		return nil, err
	}

	offset := t.End("LineHeight")
	name, offset, err := readMacRomanString(b, offset)
	if err != nil {
		return nil, err
	}
	script, offset, err := readMacRomanString(b, offset)
	if err != nil {
		return nil, err
	}

	contents := make([]ContentEntry, 0, partContentNum)
	for i := uint16(0); i < partContentNum; i++ {
		entry, next, err := decodeContentEntry(b, offset)
		if err != nil {
			return nil, err
		}
		contents = append(contents, entry)
		offset = next
	}

	return &Part{
		ID:         id,
		Type:       partType,
		Rect:       rect,
		Style:      style,
		TitleWidth: titleWidth,
		Alignment:  textAlignmentFromI16(alignmentRaw),
		FontID:     fontID,
		FontSize:   fontSize,
		TextFlags:  textFlagsField[0],
		LineHeight: lineHeight,
		Name:       name,
		Script:     script,
		Contents:   contents,
	}, nil
}

// decodeContentEntry reads one ContentEntry starting at offset in b,
// returning it along with the offset immediately following it.
func decodeContentEntry(b []byte, offset int) (ContentEntry, int, error) {
	if offset+2 > len(b) {
		return ContentEntry{}, 0, ErrOutOfBounds
	}
	id, err := layout.U16(b[offset : offset+2])
	if err != nil {
		return ContentEntry{}, 0, err
	}
	offset += 2

	if offset >= len(b) {
		return ContentEntry{}, 0, ErrOutOfBounds
	}

	var styles []ContentEntryStyle
	if b[offset] != 0 {
		if offset+2 > len(b) {
			return ContentEntry{}, 0, ErrOutOfBounds
		}
		rawLen, err := layout.U16(b[offset : offset+2])
		if err != nil {
			return ContentEntry{}, 0, err
		}
		offset += 2
		byteLen := rawLen &^ 0x8000
		styleRecords := int(byteLen / 4)
		styles = make([]ContentEntryStyle, 0, styleRecords)
		for i := 0; i < styleRecords; i++ {
			if offset+4 > len(b) {
				return ContentEntry{}, 0, ErrOutOfBounds
			}
			textPos, err := layout.U16(b[offset : offset+2])
			if err != nil {
				return ContentEntry{}, 0, err
			}
			styleID, err := layout.U16(b[offset+2 : offset+4])
			if err != nil {
				return ContentEntry{}, 0, err
			}
			styles = append(styles, ContentEntryStyle{TextPosition: textPos, StyleID: styleID})
			offset += 4
		}
	}

	text, offset, err := readMacRomanString(b, offset)
	if err != nil {
		return ContentEntry{}, 0, err
	}

	return ContentEntry{ID: id, Styles: styles, Text: text}, offset, nil
}
