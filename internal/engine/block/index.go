package block

// localIndex addresses a byte as a block number and an offset in that block.
type localIndex struct {
	outer int // block index
	inner int // offset within the block
}

// resolve converts a global offset into a local index.
//
// An offset equal to a block's length is ambiguous: it is both the end of
// that block and the start of the next one. Reads never resolve to a block
// end. With forInsert set, the end of a block is accepted, so an insertion
// at a block boundary (or at the end of the buffer) extends the earlier block.
func (s *Store) resolve(offset int, forInsert bool) (localIndex, error) {
	if offset < 0 {
		return localIndex{}, outOfRange(offset, s.length)
	}
	if forInsert && offset == 0 {
		return localIndex{}, nil
	}

	rem := offset
	for i, b := range s.blocks {
		if rem < len(b) || (forInsert && rem == len(b)) {
			return localIndex{outer: i, inner: rem}, nil
		}
		rem -= len(b)
	}

	return localIndex{}, outOfRange(offset, s.length)
}

// advance moves idx one byte forward. The result may point past the last
// block, which marks the end of the buffer.
func (s *Store) advance(idx localIndex) localIndex {
	idx.inner++
	if idx.inner >= len(s.blocks[idx.outer]) {
		idx.inner = 0
		idx.outer++
	}
	return idx
}

// retreat moves idx one byte backward. ok is false at the start of the buffer.
func (s *Store) retreat(idx localIndex) (localIndex, bool) {
	if idx.inner > 0 {
		idx.inner--
		return idx, true
	}
	for idx.outer > 0 {
		idx.outer--
		if n := len(s.blocks[idx.outer]); n > 0 {
			idx.inner = n - 1
			return idx, true
		}
	}
	return idx, false
}

// atEnd reports whether idx points past the last byte.
func (s *Store) atEnd(idx localIndex) bool {
	return idx.outer >= len(s.blocks)
}
