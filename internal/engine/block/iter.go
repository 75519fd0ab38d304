package block

// ByteIterator iterates over the bytes of a range in a Store.
//
// The iterator keeps a block index and an offset into that block and reads
// through the store on every step, so it never holds a reference into a
// block. The store must not be mutated while the iterator is in use.
type ByteIterator struct {
	store     *Store
	idx       localIndex
	remaining int
	offset    int // offset of the next byte
	cur       byte
	started   bool
}

// IterRange returns an iterator over the bytes in [start, end).
func (s *Store) IterRange(start, end int) (*ByteIterator, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}

	it := &ByteIterator{
		store:     s,
		remaining: end - start,
		offset:    start,
	}
	if start == end {
		return it, nil
	}

	idx, err := s.resolve(start, false)
	if err != nil {
		return nil, err
	}
	it.idx = idx
	return it, nil
}

// IterFrom returns an iterator from start to the end of the buffer.
func (s *Store) IterFrom(start int) (*ByteIterator, error) {
	return s.IterRange(start, s.length)
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete.
func (it *ByteIterator) Next() bool {
	if it.remaining <= 0 || it.store.atEnd(it.idx) {
		return false
	}

	if it.started {
		it.offset++
	}
	it.started = true

	it.cur = it.store.blocks[it.idx.outer][it.idx.inner]
	it.idx = it.store.advance(it.idx)
	it.remaining--
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	return it.cur
}

// Offset returns the buffer offset of the current byte.
func (it *ByteIterator) Offset() int {
	return it.offset
}

// Remaining returns the number of bytes not yet visited.
func (it *ByteIterator) Remaining() int {
	return it.remaining
}

// BlockIterator iterates over the blocks of a Store in order.
type BlockIterator struct {
	store  *Store
	next   int
	cur    []byte
	offset int
	nextAt int
}

// Blocks returns an iterator over all blocks.
// The yielded slices alias the store's memory and must not be modified.
func (s *Store) Blocks() *BlockIterator {
	return &BlockIterator{store: s}
}

// Next advances to the next block.
// Returns true if there is a block, false if iteration is complete.
func (it *BlockIterator) Next() bool {
	if it.next >= len(it.store.blocks) {
		it.cur = nil
		return false
	}

	it.cur = it.store.blocks[it.next]
	it.offset = it.nextAt
	it.nextAt += len(it.cur)
	it.next++
	return true
}

// Block returns the current block's bytes.
func (it *BlockIterator) Block() []byte {
	return it.cur
}

// Index returns the position of the current block in the store.
func (it *BlockIterator) Index() int {
	return it.next - 1
}

// Offset returns the buffer offset of the first byte of the current block.
func (it *BlockIterator) Offset() int {
	return it.offset
}
