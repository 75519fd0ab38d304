// Package history provides the undo log for the hex editor engine.
//
// Every edit is expressed as an Operation: a byte range of the current
// buffer plus the data that replaces it. Insertions use an empty range,
// deletions carry no data and overwrites replace a range with data of the
// same length.
//
// # Applying Operations
//
// A Log applies operations to anything that can splice bytes, normally a
// *block.Store:
//
//	store := block.FromBytes(data)
//	log := history.NewLog(store)
//
//	// Overwrite two bytes and remember how to revert it
//	log.Apply(history.NewOverwrite(0x10, []byte{0xca, 0xfe}), true)
//
//	// Revert the most recent operation
//	offset, ok, err := log.Undo()
//
// When recordUndo is true, Apply pushes the inverse operation: the range
// now covered by the new data, paired with the bytes that were removed.
// Undo pops that inverse and applies it without recording anything, so
// there is no redo.
//
// # Checkpoints
//
// A Checkpoint remembers the depth of the stack so that a batch of edits
// can be reverted together:
//
//	cp := log.Checkpoint()
//	// ... several edits ...
//	log.UndoToCheckpoint(cp)
//
// The log is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
package history
