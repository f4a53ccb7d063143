package hcdecode

import (
	"errors"

	"hypercard.dev/hcdecode/internal/layout"
)

// Card is a single page of a stack.
type Card struct {
	ID       uint32
	BitmapID uint32
	Flags    uint16
	Parts    []*Part
	Name     string
	Script   string
}

// Background is a card template shared by a run of cards.
type Background struct {
	ID       uint32
	BitmapID uint32
	Flags    uint16

	NextBackgroundID     uint32
	PreviousBackgroundID uint32
	CardCount            uint32

	Parts  []*Part
	Name   string
	Script string
}

func decodeCard(b []byte) (*Card, error) {
	t := layout.CardLayout

	idField, err := t.Slice(b, 0, "BlockID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading block id", Err: err}
	}
	id, err := layout.U32(idField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading block id", Err: err}
	}

	bitmapIDField, err := t.Slice(b, 0, "BitmapID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading bitmap id", Err: err}
	}
	bitmapID, err := layout.U32(bitmapIDField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading bitmap id", Err: err}
	}

	flagsField, err := t.Slice(b, 0, "Flags")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading flags", Err: err}
	}
	flags, err := layout.U16(flagsField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading flags", Err: err}
	}

	partNumField, err := t.Slice(b, 0, "PartNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part count", Err: err}
	}
	partNum, err := layout.U16(partNumField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part count", Err: err}
	}

	partContentNumField, err := t.Slice(b, 0, "PartContentNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part content count", Err: err}
	}
	partContentNum, err := layout.U16(partContentNumField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part content count", Err: err}
	}

	partContentListSizeField, err := t.Slice(b, 0, "PartContentListSize")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part content list size", Err: err}
	}
	partContentListSize, err := layout.U32(partContentListSizeField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "reading part content list size", Err: err}
	}

	parts, name, script, err := decodePartsAndTrailer(b, t.End("PartContentListSize"), partNum, partContentNum, partContentListSize)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "CARD", Detail: "decoding parts/trailer", Err: err}
	}

	return &Card{
		ID:       id,
		BitmapID: bitmapID,
		Flags:    flags,
		Parts:    parts,
		Name:     name,
		Script:   script,
	}, nil
}

func decodeBackground(b []byte) (*Background, error) {
	t := layout.BackgroundLayout

	idField, err := t.Slice(b, 0, "BlockID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading block id", Err: err}
	}
	id, err := layout.U32(idField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading block id", Err: err}
	}

	bitmapID, err := readU32Field(b, 0, t, "BitmapID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading bitmap id", Err: err}
	}
	flagsField, err := t.Slice(b, 0, "Flags")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading flags", Err: err}
	}
	flags, err := layout.U16(flagsField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading flags", Err: err}
	}

	next, err := readU32Field(b, 0, t, "NextBackgroundID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading next background id", Err: err}
	}
	prev, err := readU32Field(b, 0, t, "PreviousBackgroundID")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading previous background id", Err: err}
	}
	cardCount, err := readU32Field(b, 0, t, "CardNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading card count", Err: err}
	}

	partNumField, err := t.Slice(b, 0, "PartNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading part count", Err: err}
	}
	partNum, err := layout.U16(partNumField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading part count", Err: err}
	}
	partContentNumField, err := t.Slice(b, 0, "PartContentNum")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading part content count", Err: err}
	}
	partContentNum, err := layout.U16(partContentNumField)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading part content count", Err: err}
	}
	partContentListSize, err := readU32Field(b, 0, t, "PartContentListSize")
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "reading part content list size", Err: err}
	}

	parts, name, script, err := decodePartsAndTrailer(b, t.End("PartContentListSize"), partNum, partContentNum, partContentListSize)
	if err != nil {
		return nil, &MalformedBlockError{Tag: "BKGD", Detail: "decoding parts/trailer", Err: err}
	}

	return &Background{
		ID:                   id,
		BitmapID:             bitmapID,
		Flags:                flags,
		NextBackgroundID:     next,
		PreviousBackgroundID: prev,
		CardCount:            cardCount,
		Parts:                parts,
		Name:                 name,
		Script:               script,
	}, nil
}

// decodePartsAndTrailer implements the shared Card/Background tail:
// partNum fixed-width Part records each followed by a /8-scaled OSA script
// skip, then a name and script string.
func decodePartsAndTrailer(b []byte, offset int, partNum, partContentNum uint16, partContentListSize uint32) ([]*Part, string, string, error) {
	parts := make([]*Part, 0, partNum)
	for i := uint16(0); i < partNum; i++ {
		if offset+2 >= len(b) {
			// Once past the buffer the remaining declared part count is
			// unreliable; real stacks do this. Stop rather than read
			// garbage.
			break
		}
		partSize, err := layout.U16(b[offset : offset+2])
		if err != nil {
			return nil, "", "", err
		}

		end := offset + int(partSize)
		var part *Part
		if end <= len(b) {
			part, err = decodePart(b[offset:end], partContentNum, partContentListSize)
		} else {
			err = ErrOutOfBounds
		}
		if errors.Is(err, ErrOutOfBounds) {
			part, err = decodePart(b[offset:], partContentNum, partContentListSize)
		}
		if err != nil {
			return nil, "", "", err
		}
		parts = append(parts, part)

		offset += int(partSize)
		if offset+2 > len(b) {
			return nil, "", "", ErrOutOfBounds
		}
		oscaSize, err := layout.U16(b[offset : offset+2])
		if err != nil {
			return nil, "", "", err
		}
		offset += int(oscaSize) / 8
	}

	name, offset, err := readMacRomanString(b, offset)
	if err != nil {
		return nil, "", "", err
	}
	script, _, err := readMacRomanString(b, offset)
	if err != nil {
		return nil, "", "", err
	}

	return parts, name, script, nil
}
