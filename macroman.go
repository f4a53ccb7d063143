package hcdecode

import "golang.org/x/text/encoding/charmap"

// macRomanTable caches the 256-entry byte -> rune mapping for the Mac OS
// Roman encoding used by every textual field in a stack file (names,
// scripts, content text). Built once from golang.org/x/text's charmap,
// which already ships the bijective Mac OS Roman table this format needs.
var macRomanTable = buildMacRomanTable()

func buildMacRomanTable() [256]rune {
	var t [256]rune
	for i := 0; i < 256; i++ {
		t[i] = charmap.Macintosh.DecodeByte(byte(i))
	}
	return t
}

// macRomanToRune maps a single Mac Roman byte to its Unicode scalar.
func macRomanToRune(b byte) rune {
	return macRomanTable[b]
}

// readMacRomanString reads a null-terminated Mac Roman string starting at
// offset in b, returning the decoded string and the offset immediately
// after the terminating nul. Returns ErrOutOfBounds if no nul is found
// before the end of b.
func readMacRomanString(b []byte, offset int) (string, int, error) {
	runes := make([]rune, 0, 16)
	for {
		if offset >= len(b) {
			return "", 0, ErrOutOfBounds
		}
		ch := b[offset]
		if ch == 0 {
			offset++
			break
		}
		runes = append(runes, macRomanToRune(ch))
		offset++
	}
	return string(runes), offset, nil
}
