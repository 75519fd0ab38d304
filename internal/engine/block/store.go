package block

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// Store is an ordered sequence of byte blocks forming one logical buffer.
//
// Invariants after every mutating call:
//   - Len() equals the sum of all block lengths
//   - no block is empty
//   - no block touched by an insertion is longer than the maximum block size
type Store struct {
	blocks   [][]byte
	length   int
	minBlock int
	maxBlock int
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		minBlock: DefaultMinBlockSize,
		maxBlock: DefaultMaxBlockSize,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.normalizeSizes()

	return s
}

// FromBytes creates a store holding data as a single block.
// The store takes ownership of data.
func FromBytes(data []byte, opts ...Option) *Store {
	s := New(opts...)
	if len(data) > 0 {
		s.blocks = [][]byte{data}
	}
	s.calcLen()
	return s
}

// FromBlocks creates a store from a prebuilt block list.
// Empty blocks are dropped. The store takes ownership of the blocks.
func FromBlocks(blocks [][]byte, opts ...Option) *Store {
	s := New(opts...)
	for _, b := range blocks {
		if len(b) > 0 {
			s.blocks = append(s.blocks, b)
		}
	}
	s.calcLen()
	return s
}

// calcLen recomputes the cached length from the blocks.
func (s *Store) calcLen() {
	n := 0
	for _, b := range s.blocks {
		n += len(b)
	}
	s.length = n
}

// Len returns the total length of the buffer in bytes.
func (s *Store) Len() int {
	return s.length
}

// IsEmpty returns true if the buffer holds no bytes.
func (s *Store) IsEmpty() bool {
	return s.length == 0
}

// MinBlockSize returns the split granularity of this store.
func (s *Store) MinBlockSize() int {
	return s.minBlock
}

// MaxBlockSize returns the maximum block size of this store.
func (s *Store) MaxBlockSize() int {
	return s.maxBlock
}

// BlockCount returns the number of blocks.
func (s *Store) BlockCount() int {
	return len(s.blocks)
}

// BlockLens returns the length of every block, in order.
func (s *Store) BlockLens() []int {
	lens := make([]int, len(s.blocks))
	for i, b := range s.blocks {
		lens[i] = len(b)
	}
	return lens
}

// Get returns the byte at offset.
func (s *Store) Get(offset int) (byte, error) {
	if offset < 0 || offset >= s.length {
		return 0, outOfRange(offset, s.length)
	}
	idx, err := s.resolve(offset, false)
	if err != nil {
		return 0, err
	}
	return s.blocks[idx.outer][idx.inner], nil
}

// Set replaces the byte at offset.
func (s *Store) Set(offset int, b byte) error {
	if offset < 0 || offset >= s.length {
		return outOfRange(offset, s.length)
	}
	idx, err := s.resolve(offset, false)
	if err != nil {
		return err
	}
	s.blocks[idx.outer][idx.inner] = b
	return nil
}

// Insert inserts data at offset, shifting everything at or after offset to
// the right. An offset equal to Len() appends.
func (s *Store) Insert(offset int, data []byte) error {
	if offset < 0 || offset > s.length {
		return outOfRange(offset, s.length)
	}
	if len(data) == 0 {
		return nil
	}

	idx, err := s.resolve(offset, true)
	if err != nil {
		return err
	}
	idx = s.prepareInsert(idx)

	s.blocks[idx.outer] = slices.Insert(s.blocks[idx.outer], idx.inner, data...)
	s.splitOversized(idx.outer)

	s.calcLen()
	return nil
}

// Delete removes the bytes in [start, end) and returns them.
func (s *Store) Delete(start, end int) ([]byte, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	return s.moveOut(start, end)
}

// checkRange validates [start, end) against the current content.
func (s *Store) checkRange(start, end int) error {
	if end < start {
		return invalidRange(start, end)
	}
	if start < 0 {
		return outOfRange(start, s.length)
	}
	if end > s.length {
		return outOfRange(end, s.length)
	}
	return nil
}

// moveOut drains [start, end) out of the blocks. The range must be valid.
func (s *Store) moveOut(start, end int) ([]byte, error) {
	if start == end {
		return []byte{}, nil
	}

	begin, err := s.resolve(start, false)
	if err != nil {
		return nil, err
	}
	last, err := s.resolve(end, true)
	if err != nil {
		return nil, err
	}

	res := make([]byte, 0, end-start)

	if begin.outer == last.outer {
		b := s.blocks[begin.outer]
		res = append(res, b[begin.inner:last.inner]...)
		s.blocks[begin.outer] = slices.Delete(b, begin.inner, last.inner)
	} else {
		for i := begin.outer; i <= last.outer; i++ {
			b := s.blocks[i]
			lo, hi := 0, len(b)
			if i == begin.outer {
				lo = begin.inner
			}
			if i == last.outer {
				hi = last.inner
			}
			res = append(res, b[lo:hi]...)
			s.blocks[i] = slices.Delete(b, lo, hi)
		}
	}

	s.dropEmpty()
	s.calcLen()
	return res, nil
}

// dropEmpty removes zero-length blocks.
func (s *Store) dropEmpty() {
	s.blocks = slices.DeleteFunc(s.blocks, func(b []byte) bool {
		return len(b) == 0
	})
}

// Overwrite replaces len(data) bytes starting at offset and returns the bytes
// that were there before.
func (s *Store) Overwrite(offset int, data []byte) ([]byte, error) {
	if offset < 0 || offset > s.length {
		return nil, outOfRange(offset, s.length)
	}
	if offset+len(data) > s.length {
		return nil, outOfRange(offset+len(data), s.length)
	}

	orig := make([]byte, 0, len(data))
	if len(data) == 0 {
		return orig, nil
	}

	idx, err := s.resolve(offset, false)
	if err != nil {
		return nil, err
	}

	rest := data
	for len(rest) > 0 {
		b := s.blocks[idx.outer][idx.inner:]
		n := min(len(b), len(rest))
		orig = append(orig, b[:n]...)
		copy(b, rest[:n])
		rest = rest[n:]
		idx = localIndex{outer: idx.outer + 1}
	}

	return orig, nil
}

// Splice removes the part of [start, end) that currently exists and inserts
// data at start. It returns the removed bytes.
//
// The end of the range is clamped to Len(), so a range running past the end
// of the buffer replaces up to the end. The start is never clamped.
func (s *Store) Splice(start, end int, data []byte) ([]byte, error) {
	r := NewRange(start, end)
	if !r.IsValid() {
		return nil, invalidRange(start, end)
	}
	if start < 0 || start > s.length {
		return nil, outOfRange(start, s.length)
	}

	removed := []byte{}
	if cut := r.Clamp(s.length); !cut.IsEmpty() {
		var err error
		removed, err = s.moveOut(cut.Start, cut.End)
		if err != nil {
			return nil, err
		}
	}

	if err := s.Insert(start, data); err != nil {
		return removed, err
	}
	return removed, nil
}

// CopyOut returns a copy of the bytes in [start, end).
func (s *Store) CopyOut(start, end int) ([]byte, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}

	out := make([]byte, 0, end-start)
	if start == end {
		return out, nil
	}

	idx, err := s.resolve(start, false)
	if err != nil {
		return nil, err
	}
	for remaining := end - start; remaining > 0; {
		b := s.blocks[idx.outer][idx.inner:]
		n := min(len(b), remaining)
		out = append(out, b[:n]...)
		remaining -= n
		idx = localIndex{outer: idx.outer + 1}
	}
	return out, nil
}

// Bytes returns a copy of the whole buffer.
// Prefer Blocks or WriteTo for large buffers.
func (s *Store) Bytes() []byte {
	out := make([]byte, 0, s.length)
	for _, b := range s.blocks {
		out = append(out, b...)
	}
	return out
}

// WriteTo writes the buffer to w one block at a time.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := s.Blocks()
	for it.Next() {
		b := it.Block()
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n != len(b) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// Equal reports whether the buffer content equals data.
func (s *Store) Equal(data []byte) bool {
	if len(data) != s.length {
		return false
	}
	for _, b := range s.blocks {
		if !bytes.Equal(b, data[:len(b)]) {
			return false
		}
		data = data[len(b):]
	}
	return true
}

// String returns a debug representation of the block layout.
func (s *Store) String() string {
	return fmt.Sprintf("block.Store{len: %d, blocks: %v}", s.length, s.BlockLens())
}
