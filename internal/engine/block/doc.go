// Package block provides a mutable byte store split into bounded blocks.
//
// A Store holds one logical buffer as an ordered list of variable-length
// byte blocks. Keeping every block between a soft minimum and a hard maximum
// size bounds the cost of any single insert, delete or overwrite, regardless
// of how large the buffer grows. This makes the store suitable for editing
// binary files of many megabytes or gigabytes.
//
// Basic usage:
//
//	s := block.FromBytes(data)
//	_ = s.Insert(2, []byte{0xde, 0xad})
//	removed, _ := s.Delete(0, 2)
//	original, _ := s.Overwrite(4, []byte{0xff})
//	off, found := s.Find([]byte{0xde, 0xad}, 0)
//
// Offsets are plain byte offsets into the logical buffer. Internally every
// offset is resolved to a (block, offset-in-block) pair by walking the block
// list from the front. The walk is linear in the number of blocks; the block
// size bounds keep that number small for realistic edit patterns.
//
// Block sizes:
//
// The default bounds are DefaultMinBlockSize (1 MiB) and DefaultMaxBlockSize
// (4 MiB). Both are per-store settings so tests can exercise block splitting
// with a handful of bytes:
//
//	s := block.New(block.WithMinBlockSize(4), block.WithMaxBlockSize(16))
//
// Errors:
//
// Offsets outside the current content are caller bugs. They are reported as
// errors wrapping ErrOffsetOutOfRange or ErrRangeInvalid so callers can use
// errors.Is. The store never clamps a start offset; only Splice clamps the end
// of its range to the buffer length.
//
// Iteration:
//
// IterRange and Blocks return lazy, read-only iterators. The store must not be
// mutated while an iterator derived from it is still in use.
//
// A Store is not safe for concurrent use.
package block
