// Package hcdecode provides a pure Go decoder for legacy HyperCard stack
// files.
//
// A stack file is a single container fork of variably-sized typed blocks:
// a stack header, ordered card and background blocks, WOBA-compressed
// bitmap images, font and style tables, and embedded HyperTalk scripts.
// The decoder consumes a raw byte buffer of an entire stack file and
// produces an immutable in-memory object graph rooted at Stack.
//
// The package supports:
//   - Stack header and master-index parsing
//   - CARD / BKGD blocks, including nested button and field records
//   - BMAP blocks (WOBA run-length bitmap decompression)
//   - STBL style tables
//   - Mac Roman text decoding for all string fields
//
// Basic usage:
//
//	stack, err := hcdecode.Parse(data)
//
// Script text extracted from a stack can be segmented into HyperTalk
// handler blocks with the sibling hypertalk package.
//
// Write support, script execution, and rendering are out of scope.
package hcdecode
