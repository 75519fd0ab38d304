// Package engine provides the core binary editing engine for hexstorm.
//
// The engine package serves as the main facade, combining the block store
// and the undo log into a single thread-safe API suitable for building hex
// editors and batch patching tools.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - block: chunked byte storage that keeps edits local to a few blocks
//   - history: operation log with undo
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	e := engine.NewFromBytes([]byte{0x7f, 'E', 'L', 'F'})
//
//	// Insert and overwrite bytes
//	e.Insert(4, []byte{0x02, 0x01})
//	e.Overwrite(0, []byte{0x00})
//
//	// Revert the overwrite
//	offset, err := e.Undo() // offset == 0
//
// # Loading Files
//
// NewFromReader reads content in block-sized chunks, so large files never
// produce a single oversized block:
//
//	f, _ := os.Open("firmware.bin")
//	defer f.Close()
//	e, _ := engine.NewFromReader(f, engine.WithMaxUndoEntries(10000))
//
// Saving streams the blocks in order:
//
//	e.WriteTo(out)
//
// # Searching
//
// Find scans forward from an offset; FindNext wraps around to the start of
// the buffer when nothing is found after the offset.
//
// # Error Handling
//
// The package defines several error values, all usable with errors.Is:
//
//   - ErrOffsetOutOfRange: Invalid byte offset
//   - ErrRangeInvalid: Invalid range (e.g., end < start)
//   - ErrNothingToUndo: Undo stack is empty
//   - ErrReadOnly: Write operation on read-only engine
package engine
