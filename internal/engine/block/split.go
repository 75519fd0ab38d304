package block

import (
	"bytes"
	"slices"
)

// prepareInsert makes room for an insertion at idx and returns the index the
// data should actually be inserted at.
//
// A block below the maximum size is used as is. A full block is split at the
// last minimum-size boundary at or before the insertion point; the tail
// becomes a new block and the insertion continues in it. When that boundary
// is the block start, the block is cut down to the minimum size instead and
// the insertion stays where it was.
func (s *Store) prepareInsert(idx localIndex) localIndex {
	if idx.outer >= len(s.blocks) {
		s.blocks = append(s.blocks, nil)
	}

	for {
		cur := s.blocks[idx.outer]
		if len(cur) < s.maxBlock {
			return idx
		}

		boundary := (idx.inner / s.minBlock) * s.minBlock
		if boundary == 0 {
			s.carve(idx.outer, s.minBlock)
			return idx
		}

		// The tail may be empty when inserting at the very end of a full
		// block; the loop then stops at the new empty block.
		s.carve(idx.outer, boundary)
		idx = localIndex{outer: idx.outer + 1, inner: idx.inner - boundary}
	}
}

// carve moves everything from at onward in block i into a new block placed
// right after it.
func (s *Store) carve(i, at int) {
	cur := s.blocks[i]
	tail := bytes.Clone(cur[at:])
	s.blocks[i] = cur[:at]
	s.blocks = slices.Insert(s.blocks, i+1, tail)
}

// splitOversized breaks block i into minimum-size pieces when an insertion
// pushed it past the maximum. The last piece keeps the remainder.
func (s *Store) splitOversized(i int) {
	cur := s.blocks[i]
	if len(cur) <= s.maxBlock {
		return
	}

	pieces := make([][]byte, 0, len(cur)/s.minBlock+1)
	for len(cur) > s.maxBlock {
		pieces = append(pieces, bytes.Clone(cur[:s.minBlock]))
		cur = cur[s.minBlock:]
	}
	pieces = append(pieces, bytes.Clone(cur))

	s.blocks[i] = pieces[0]
	s.blocks = slices.Insert(s.blocks, i+1, pieces[1:]...)
}
