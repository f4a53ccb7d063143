package hcdecode

import (
	"log"

	"hypercard.dev/hcdecode/internal/layout"
)

// StackFormat classifies the HyperCard format version a stack file declares.
type StackFormat int

const (
	FormatNotHyperCard StackFormat = iota
	FormatPreRelease1x
	Format1x
	FormatPreRelease2x
	Format2x
	FormatUnsupported
)

func (f StackFormat) String() string {
	switch f {
	case FormatNotHyperCard:
		return "not-hypercard"
	case FormatPreRelease1x:
		return "prerelease-1.x"
	case Format1x:
		return "1.x"
	case FormatPreRelease2x:
		return "prerelease-2.x"
	case Format2x:
		return "2.x"
	default:
		return "unsupported"
	}
}

func stackFormatFromCode(code uint32) StackFormat {
	switch {
	case code == 0:
		return FormatNotHyperCard
	case code >= 1 && code <= 7:
		return FormatPreRelease1x
	case code == 8:
		return Format1x
	case code == 9:
		return FormatPreRelease2x
	case code == 10:
		return Format2x
	default:
		return FormatUnsupported
	}
}

// Rect is a (top, left, bottom, right) coordinate quadruple, as stored in
// the stack header and in Part/Bitmap records.
type Rect struct {
	Top, Left, Bottom, Right int16
}

// Options controls optional decoder behavior. The zero value is ready to
// use: a default logger and no extra toggles.
type Options struct {
	// Logger receives non-fatal diagnostics: unknown block tags, a MAST
	// tag mismatch, and similar recoverable anomalies. Defaults to
	// log.Default() when nil.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Stack is the root aggregate produced by Parse.
type Stack struct {
	Format StackFormat

	VersionAtCreation                            HyperCardVersion
	VersionAtLastCompacting                      HyperCardVersion
	VersionAtLastModificationSinceLastCompacting HyperCardVersion
	VersionAtLastModification                    HyperCardVersion

	CardWindow Rect
	Screen     Rect
	Scroll     struct{ X, Y int16 }
	Size       struct{ Width, Height int16 }

	Script string

	Objects map[uint32]Block

	Cards           []*Card
	FirstCard       *Card
	Backgrounds     []*Background
	FirstBackground *Background

	// Fonts is empty unless a future dispatch case materializes font
	// blocks; no tag in decodeOneBlock's switch currently produces one.
	Fonts []Font

	Styles map[uint32]Style
}

// Font is a placeholder for the stack's font table; see Stack.Fonts.
type Font struct {
	ID   uint16
	Name string
}

// Parse decodes a complete HyperCard stack file from bytes.
func Parse(bytes []byte) (*Stack, error) {
	return ParseWithOptions(bytes, Options{})
}

// ParseWithOptions is Parse with explicit Options.
func ParseWithOptions(bytes []byte, opts Options) (*Stack, error) {
	logger := opts.logger()

	if len(bytes) < 8 {
		return nil, &InvalidFileError{Reason: "too short"}
	}
	tag, err := layout.GenericBlock.Slice(bytes, 0, "BlockType")
	if err != nil || string(tag) != "STAK" {
		return nil, &InvalidFileError{Reason: "not a stack"}
	}

	formatRaw, err := readU32Field(bytes, 0, layout.StackDataLayout, "HyperCardFormat")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	format := stackFormatFromCode(formatRaw)
	if format == FormatUnsupported {
		return nil, &UnsupportedFormatError{Code: formatRaw}
	}

	versions := make([]HyperCardVersion, 4)
	for i, name := range []string{
		"HyperCardVersionAtCreation",
		"HyperCardVersionAtLastCompacting",
		"HyperCardVersionAtLastModificationSinceLastCompacting",
		"HyperCardVersionAtLastModification",
	} {
		v, err := readU32Field(bytes, 0, layout.StackDataLayout, name)
		if err != nil {
			return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
		}
		versions[i] = HyperCardVersion(v)
	}

	cardWindow, err := readRect(bytes, layout.StackDataLayout, "CardWindowTop", "CardWindowLeft", "CardWindowBottom", "CardWindowRight")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	screen, err := readRect(bytes, layout.StackDataLayout, "ScreenTop", "ScreenLeft", "ScreenBottom", "ScreenRight")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	scrollX, err := readI16Field(bytes, layout.StackDataLayout, "XCoord")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	scrollY, err := readI16Field(bytes, layout.StackDataLayout, "YCoord")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	width, err := readI16Field(bytes, layout.StackDataLayout, "Width")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	height, err := readI16Field(bytes, layout.StackDataLayout, "Height")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}

	firstBackgroundID, err := readU32Field(bytes, 0, layout.StackDataLayout, "FirstBackgroundID")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}
	firstCardID, err := readU32Field(bytes, 0, layout.StackDataLayout, "FirstCardID")
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated header: " + err.Error()}
	}

	// Global script: null-terminated Mac Roman starting at 0x600. Some
	// tooling reads from 0x601 instead; sample stacks agree with 0x600.
	script, scriptEnd, err := readMacRomanString(bytes, 0x600)
	if err != nil {
		return nil, &InvalidFileError{Reason: "truncated global script: " + err.Error()}
	}

	masterOffset := roundUpTo0x200(scriptEnd)
	objects, err := decodeBlocks(bytes, masterOffset, logger)
	if err != nil {
		return nil, err
	}

	backgrounds, firstBackground := filterBackgrounds(objects, firstBackgroundID)
	cards, firstCard := filterCards(objects, firstCardID)
	styles, ok := filterStyles(objects)
	if !ok {
		return nil, &MissingStyleTableError{}
	}
	if firstCard == nil || firstBackground == nil {
		return nil, &InvalidFileError{Reason: "first card or first background id does not resolve to a materialized block"}
	}

	return &Stack{
		Format: format,

		VersionAtCreation:                            versions[0],
		VersionAtLastCompacting:                      versions[1],
		VersionAtLastModificationSinceLastCompacting: versions[2],
		VersionAtLastModification:                    versions[3],

		CardWindow: cardWindow,
		Screen:     screen,
		Scroll:     struct{ X, Y int16 }{scrollX, scrollY},
		Size:       struct{ Width, Height int16 }{width, height},

		Script:  script,
		Objects: objects,

		Cards:           cards,
		FirstCard:       firstCard,
		Backgrounds:     backgrounds,
		FirstBackground: firstBackground,
		Fonts:           nil,
		Styles:          styles,
	}, nil
}

func roundUpTo0x200(offset int) int {
	const boundary = 0x200
	remainder := offset % boundary
	if remainder == 0 {
		return offset
	}
	return offset + boundary - remainder
}

func readRect(b []byte, t layout.Table, top, left, bottom, right string) (Rect, error) {
	ft, err := readI16Field(b, t, top)
	if err != nil {
		return Rect{}, err
	}
	fl, err := readI16Field(b, t, left)
	if err != nil {
		return Rect{}, err
	}
	fb, err := readI16Field(b, t, bottom)
	if err != nil {
		return Rect{}, err
	}
	fr, err := readI16Field(b, t, right)
	if err != nil {
		return Rect{}, err
	}
	return Rect{Top: ft, Left: fl, Bottom: fb, Right: fr}, nil
}

func readU32Field(b []byte, base int, t layout.Table, name string) (uint32, error) {
	s, err := t.Slice(b, base, name)
	if err != nil {
		return 0, err
	}
	return layout.U32(s)
}

func readI16Field(b []byte, t layout.Table, name string) (int16, error) {
	s, err := t.Slice(b, 0, name)
	if err != nil {
		return 0, err
	}
	return layout.I16(s)
}
