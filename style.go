package hcdecode

import (
	"hypercard.dev/hcdecode/internal/layout"
)

// Style is one entry of a stack's style table.
type Style struct {
	FontID     int16
	StyleFlags int16
	FontSize   int16
}

// decodeStyleTable parses an STBL block into a map from style id to Style.
// Entries are 24 bytes wide, id first, with 14 reserved trailing bytes.
func decodeStyleTable(b []byte) (map[uint32]Style, error) {
	t := layout.StyleTableLayout

	numField, err := t.Slice(b, 0, "StyleNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "STBL", Detail: "reading style count", Err: err}
	}
	styleNum, err := layout.U32(numField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "STBL", Detail: "reading style count", Err: err}
	}

	offset := t.End("NextStyleID")
	entryWidth := layout.StyleLayout.End("Reserved")

	styles := make(map[uint32]Style, styleNum)
	for i := uint32(0); i < styleNum; i++ {
		if offset+entryWidth > len(b) {
			return nil, &MalformedBlockError{Tag: "STBL", Detail: "style entry runs past end of block", Err: ErrOutOfBounds}
		}
		entry := b[offset : offset+entryWidth]

		idField, err := layout.StyleLayout.Slice(entry, 0, "StyleID")
		if err != nil {
			return nil, err
		}
		id, err := layout.U32(idField)
		if err != nil {
			return nil, err
		}

		fontIDField, err := layout.StyleLayout.Slice(entry, 0, "FontID")
		if err != nil {
			return nil, err
		}
		fontID, err := layout.I16(fontIDField)
		if err != nil {
			return nil, err
		}

		styleFlagsField, err := layout.StyleLayout.Slice(entry, 0, "StyleFlags")
		if err != nil {
			return nil, err
		}
		styleFlags, err := layout.I16(styleFlagsField)
		if err != nil {
			return nil, err
		}

		fontSizeField, err := layout.StyleLayout.Slice(entry, 0, "FontSize")
		if err != nil {
			return nil, err
		}
		fontSize, err := layout.I16(fontSizeField)
		if err != nil {
			return nil, err
		}

		styles[id] = Style{FontID: fontID, StyleFlags: styleFlags, FontSize: fontSize}
		offset += entryWidth
	}

	return styles, nil
}
