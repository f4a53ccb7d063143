package layout

// Field is a named byte range within a block, relative to the start of the
// block (or the start of the enclosing nested record).
type Field struct {
	Start int
	End   int
}

// Table maps field names to their byte ranges. Tables are built once, at
// package init, from a declarative sequence of (name, width) entries —
// widths accumulate so a consumer can look up any field by name without
// tracking a cursor.
type Table map[string]Field

type entry struct {
	name  string
	width int
}

func e(name string, width int) entry { return entry{name, width} }

func build(entries ...entry) Table {
	t := make(Table, len(entries))
	offset := 0
	for _, en := range entries {
		t[en.name] = Field{Start: offset, End: offset + en.width}
		offset += en.width
	}
	return t
}

// Start returns the start offset of a named field. It panics if the name
// is not part of the table — a programmer error, since table field names
// are a fixed, known set per block kind.
func (t Table) Start(name string) int {
	f, ok := t[name]
	if !ok {
		panic("layout: unknown field " + name)
	}
	return f.Start
}

// End returns the end offset of a named field.
func (t Table) End(name string) int {
	f, ok := t[name]
	if !ok {
		panic("layout: unknown field " + name)
	}
	return f.End
}

// Slice returns b[field.Start:field.End], relative to offset, checking bounds.
func (t Table) Slice(b []byte, offset int, name string) ([]byte, error) {
	f := t[name]
	lo, hi := offset+f.Start, offset+f.End
	if lo < 0 || hi > len(b) || lo > hi {
		return nil, ErrOutOfBounds
	}
	return b[lo:hi], nil
}

// GenericBlock is the 16-byte header every block begins with: block size
// (u32), four-byte ASCII type tag, block id (u32), four bytes filler.
var GenericBlock = build(
	e("BlockSize", 4),
	e("BlockType", 4),
	e("BlockID", 4),
	e("Filler0", 4),
)

// StackDataLayout is the canonical STAK block field table, spanning bytes
// 0..0x400 of the stack header. The trailing skip-ahead padding widths are
// approximate, inherited from the known-unreliable format documentation;
// they are never addressed by name and exist only to keep relative offsets
// of the fields that follow them correct.
var StackDataLayout = build(
	e("BlockSize", 4),
	e("BlockType", 4),
	e("BlockID", 4),
	e("Filler0", 4),
	e("HyperCardFormat", 4),
	e("DataFork", 4),
	e("BlockSize2", 4),
	e("Unk1", 4),
	e("MaximumEver", 4),
	e("BackgroundNum", 4),
	e("FirstBackgroundID", 4),
	e("CardNum", 4),
	e("FirstCardID", 4),
	e("ListID", 4),
	e("FreeBlockNum", 4),
	e("FreeBlockSize", 4),
	e("PrintBlockID", 4),
	e("PasswordHash", 4),
	e("UserLevel", 2),
	e("ProtAlignmentShortOne", 2),
	e("ProtFlags", 2),
	e("ProtAlignmentShortEnd", 2),
	e("SkipAhead16", 16),
	e("HyperCardVersionAtCreation", 4),
	e("HyperCardVersionAtLastCompacting", 4),
	e("HyperCardVersionAtLastModificationSinceLastCompacting", 4),
	e("HyperCardVersionAtLastModification", 4),
	e("Checksum", 4),
	e("MarkedCardNum", 4),
	e("CardWindowTop", 2),
	e("CardWindowLeft", 2),
	e("CardWindowBottom", 2),
	e("CardWindowRight", 2),
	e("ScreenTop", 2),
	e("ScreenLeft", 2),
	e("ScreenBottom", 2),
	e("ScreenRight", 2),
	e("XCoord", 2),
	e("YCoord", 2),
	e("Unk2", 2),
	e("Unk3", 2),
	e("SkipAhead288", 288),
	e("FontTableID", 4),
	e("StyleTableID", 4),
	e("Height", 2),
	e("Width", 2),
	e("Unk4", 2),
	e("Unk5", 2),
	e("SkipAhead256", 256),
	e("PatternTable", 320),
)

// CardLayout is the fixed-size prefix of a CARD block, before the
// variable-length part list.
var CardLayout = build(
	e("BlockSize", 4),
	e("BlockType", 4),
	e("BlockID", 4),
	e("Filler0", 4),
	e("BitmapID", 4),
	e("Flags", 2),
	e("AlignmentShort1", 2),
	e("SkipToOffset0x20", 8),
	e("ParentPageID", 4),
	e("BackgroundID", 4),
	e("PartNum", 2),
	e("NewPartID", 2),
	e("PartListSize", 4),
	e("PartContentNum", 2),
	e("PartContentListSize", 4),
)

// BackgroundLayout is the fixed-size prefix of a BKGD block. It mirrors
// CardLayout's shape (same header convention) but carries next/prev
// background links and a card count in place of the page/background
// parent ids a CARD block has.
var BackgroundLayout = build(
	e("BlockSize", 4),
	e("BlockType", 4),
	e("BlockID", 4),
	e("Filler0", 4),
	e("BitmapID", 4),
	e("Flags", 2),
	e("AlignmentShort1", 2),
	e("SkipToOffset0x20", 8),
	e("NextBackgroundID", 4),
	e("PreviousBackgroundID", 4),
	e("CardNum", 4),
	e("PartNum", 2),
	e("NewPartID", 2),
	e("PartListSize", 4),
	e("PartContentNum", 2),
	e("PartContentListSize", 4),
)

// PartLayout is the fixed-size prefix of a Part record, before its trailing
// name/script strings and content entries.
var PartLayout = build(
	e("PartEntrySize", 2),
	e("PartID", 2),
	e("PartType", 1),
	e("Flags", 1),
	e("PartRectTop", 2),
	e("PartRectLeft", 2),
	e("PartRectBottom", 2),
	e("PartRectRight", 2),
	e("TextFlags", 1),
	e("Style", 1),
	e("TitleWidthOrLastSelectedLine", 2),
	e("IconIDOrFirstSelectedLine", 2),
	e("TextAlignment", 2),
	e("TextFontID", 2),
	e("TextSize", 2),
	e("TextStyleFlags", 1),
	e("Filler0", 1),
	e("LineHeight", 2),
)

// StyleTableLayout is the fixed-size prefix of an STBL block.
var StyleTableLayout = build(
	e("BlockSize", 4),
	e("BlockType", 4),
	e("BlockID", 4),
	e("Filler0", 4),
	e("StyleNum", 4),
	e("NextStyleID", 4),
)

// StyleLayout is a single 24-byte style-table entry.
var StyleLayout = build(
	e("StyleID", 4),
	e("FontID", 2),
	e("StyleFlags", 2),
	e("FontSize", 2),
	e("Reserved", 14),
)

// WobaHeader is the WOBA picture header found inside a BMAP block, relative
// to the byte immediately following the block id (i.e. the block's
// BlockSize+BlockType+BlockID prefix, 12 bytes, already consumed). The
// legacy format reference counts these fields from the block's absolute
// start instead; sample stacks agree with the 12-byte-prefix reading.
var WobaHeader = build(
	e("TotalRectTop", 2),
	e("TotalRectLeft", 2),
	e("TotalRectBottom", 2),
	e("TotalRectRight", 2),
	e("MaskRectTop", 2),
	e("MaskRectLeft", 2),
	e("MaskRectBottom", 2),
	e("MaskRectRight", 2),
	e("PictureRectTop", 2),
	e("PictureRectLeft", 2),
	e("PictureRectBottom", 2),
	e("PictureRectRight", 2),
	e("UnknownGroup2", 8),
	e("MaskDataLength", 4),
	e("PictureDataLength", 4),
)
