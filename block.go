package hcdecode

import (
	"fmt"
	"log"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"hypercard.dev/hcdecode/internal/layout"
)

// BlockKind discriminates the tagged union a decoded Block carries.
type BlockKind int

const (
	BlockKindUnknown BlockKind = iota
	BlockKindBackground
	BlockKindBitmap
	BlockKindCard
	BlockKindStyleTable
)

// Block is the tagged variant over every block type the master index can
// point at. Exactly one of the typed fields is populated, according to
// Kind.
type Block struct {
	Kind BlockKind

	Background *Background
	Bitmap     *Bitmap
	Card       *Card
	Styles     map[uint32]Style
}

// GenericHeader is the 16-byte prefix every block begins with.
type GenericHeader struct {
	BlockSize uint32
	BlockType string
	BlockID   uint32
}

func readGenericHeader(b []byte) (GenericHeader, error) {
	sizeBytes, err := layout.GenericBlock.Slice(b, 0, "BlockSize")
	if err != nil {
		return GenericHeader{}, err
	}
	size, err := layout.U32(sizeBytes)
	if err != nil {
		return GenericHeader{}, err
	}
	typeBytes, err := layout.GenericBlock.Slice(b, 0, "BlockType")
	if err != nil {
		return GenericHeader{}, err
	}
	for _, c := range typeBytes {
		if c >= 0x80 {
			return GenericHeader{}, &EncodingError{Context: fmt.Sprintf("block type tag % x is not 7-bit ASCII", typeBytes)}
		}
	}
	idBytes, err := layout.GenericBlock.Slice(b, 0, "BlockID")
	if err != nil {
		return GenericHeader{}, err
	}
	id, err := layout.U32(idBytes)
	if err != nil {
		return GenericHeader{}, err
	}
	return GenericHeader{BlockSize: size, BlockType: string(typeBytes), BlockID: id}, nil
}

type masterEntry struct {
	id     uint8
	offset uint32
}

// decodeBlocks reads the MAST block at masterOffset, walks its index, and
// dispatches every surviving (id, offset) pair to a per-block decoder.
// Independent decodes touch disjoint byte ranges and run concurrently via
// errgroup; the result is a single map keyed by block id.
func decodeBlocks(bytes []byte, masterOffset int, logger *log.Logger) (map[uint32]Block, error) {
	if masterOffset < 0 || masterOffset+16 > len(bytes) {
		return nil, &InvalidFileError{Reason: "master block offset out of range"}
	}
	header, err := readGenericHeader(bytes[masterOffset:])
	if err != nil {
		return nil, &InvalidFileError{Reason: "unreadable master block header: " + err.Error()}
	}
	if header.BlockType != "MAST" {
		logger.Printf("hcdecode: expected MAST block at offset %#x, got %q", masterOffset, header.BlockType)
	}

	tableStart := masterOffset + 0x20
	tableLen := int(header.BlockSize) / 2
	if tableStart < 0 || tableStart+tableLen > len(bytes) || tableLen < 0 {
		return nil, &InvalidFileError{Reason: "master table extends past end of file"}
	}
	table := bytes[tableStart : tableStart+tableLen]

	slotCount := int(header.BlockSize) / 8
	entries := make([]masterEntry, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		lo := i * 4
		hi := lo + 4
		if hi > len(table) {
			break
		}
		slot := table[lo:hi]
		offset24, err := layout.U24(slot[0:3])
		if err != nil {
			continue
		}
		offset := offset24 * 32
		if offset == 0 {
			continue // free slot
		}
		entries = append(entries, masterEntry{id: slot[3], offset: offset})
	}

	type result struct {
		id    uint32
		block Block
		ok    bool
	}
	results := make([]result, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			block, blockID, ok := decodeOneBlock(bytes, int(entry.offset), logger)
			if ok {
				results[i] = result{id: blockID, block: block, ok: true}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	objects := make(map[uint32]Block, len(entries))
	for _, r := range results {
		if r.ok {
			objects[r.id] = r.block
		}
	}
	return objects, nil
}

// decodeOneBlock dispatches a single block by its tag. A decode failure on
// a non-structural block is logged and the block is dropped rather than
// aborting the whole parse.
func decodeOneBlock(bytes []byte, offset int, logger *log.Logger) (Block, uint32, bool) {
	if offset < 0 || offset+16 > len(bytes) {
		logger.Printf("hcdecode: block at offset %#x has no room for a header, skipping", offset)
		return Block{}, 0, false
	}
	header, err := readGenericHeader(bytes[offset:])
	if err != nil {
		logger.Printf("hcdecode: cannot read header at offset %#x: %v", offset, err)
		return Block{}, 0, false
	}
	end := offset + int(header.BlockSize)
	if end < offset || end > len(bytes) {
		logger.Printf("hcdecode: block %q at offset %#x claims a size past end of file, skipping", header.BlockType, offset)
		return Block{}, 0, false
	}
	chunk := bytes[offset:end]

	switch header.BlockType {
	case "LIST", "PAGE":
		// Redundant edit-time acceleration indexes; not useful for
		// read-only decoding.
		return Block{}, 0, false
	case "BMAP":
		bmp, err := decodeBitmap(chunk)
		if err != nil {
			logger.Printf("hcdecode: malformed BMAP block at offset %#x: %v", offset, err)
			return Block{}, 0, false
		}
		return Block{Kind: BlockKindBitmap, Bitmap: bmp}, header.BlockID, true
	case "CARD":
		card, err := decodeCard(chunk)
		if err != nil {
			logger.Printf("hcdecode: malformed CARD block at offset %#x: %v", offset, err)
			return Block{}, 0, false
		}
		return Block{Kind: BlockKindCard, Card: card}, header.BlockID, true
	case "BKGD":
		bkgd, err := decodeBackground(chunk)
		if err != nil {
			logger.Printf("hcdecode: malformed BKGD block at offset %#x: %v", offset, err)
			return Block{}, 0, false
		}
		return Block{Kind: BlockKindBackground, Background: bkgd}, header.BlockID, true
	case "STBL":
		styles, err := decodeStyleTable(chunk)
		if err != nil {
			logger.Printf("hcdecode: malformed STBL block at offset %#x: %v", offset, err)
			return Block{}, 0, false
		}
		return Block{Kind: BlockKindStyleTable, Styles: styles}, header.BlockID, true
	default:
		logger.Printf("hcdecode: unimplemented block type %q (id %d) at offset %#x", header.BlockType, header.BlockID, offset)
		return Block{}, 0, false
	}
}

// filterBackgrounds partitions objects into the ordered background list and
// locates the one matching firstBackgroundID. Ordering is over sorted ids,
// so repeated runs produce identical output for diffable debugging.
func filterBackgrounds(objects map[uint32]Block, firstBackgroundID uint32) ([]*Background, *Background) {
	ids := maps.Keys(objects)
	slices.Sort(ids)

	var list []*Background
	var first *Background
	for _, id := range ids {
		obj := objects[id]
		if obj.Kind != BlockKindBackground {
			continue
		}
		list = append(list, obj.Background)
		if id == firstBackgroundID {
			first = obj.Background
		}
	}
	return list, first
}

// filterCards partitions objects into the ordered card list and locates
// the one matching firstCardID.
func filterCards(objects map[uint32]Block, firstCardID uint32) ([]*Card, *Card) {
	ids := maps.Keys(objects)
	slices.Sort(ids)

	var list []*Card
	var first *Card
	for _, id := range ids {
		obj := objects[id]
		if obj.Kind != BlockKindCard {
			continue
		}
		list = append(list, obj.Card)
		if id == firstCardID {
			first = obj.Card
		}
	}
	return list, first
}

// filterStyles returns the first STBL block's style map found among the
// objects. Exactly one is expected; ok is false if none was materialized.
func filterStyles(objects map[uint32]Block) (map[uint32]Style, bool) {
	ids := maps.Keys(objects)
	slices.Sort(ids)
	for _, id := range ids {
		if obj := objects[id]; obj.Kind == BlockKindStyleTable {
			return obj.Styles, true
		}
	}
	return nil, false
}
