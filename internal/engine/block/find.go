package block

// Find returns the offset of the first occurrence of needle at or after from.
// found is false when there is no occurrence or from lies outside
// [0, Len()]. An empty needle matches at from.
//
// The search compares needle against the buffer at every candidate offset,
// so it costs O((Len()-from) * len(needle)).
func (s *Store) Find(needle []byte, from int) (offset int, found bool) {
	if from < 0 || from > s.length {
		return 0, false
	}
	if len(needle) == 0 {
		return from, true
	}
	if from+len(needle) > s.length {
		return 0, false
	}

	idx, err := s.resolve(from, false)
	if err != nil {
		return 0, false
	}

	last := s.length - len(needle)
	for pos := from; pos <= last; pos++ {
		if s.matchAt(idx, needle) {
			return pos, true
		}
		idx = s.advance(idx)
	}
	return 0, false
}

// FindBackward returns the offset of the last occurrence of needle that
// starts at or before from.
func (s *Store) FindBackward(needle []byte, from int) (offset int, found bool) {
	if len(needle) > s.length || from < 0 {
		return 0, false
	}
	if len(needle) == 0 {
		return min(from, s.length), true
	}

	pos := min(from, s.length-len(needle))
	idx, err := s.resolve(pos, false)
	if err != nil {
		return 0, false
	}

	for {
		if s.matchAt(idx, needle) {
			return pos, true
		}
		var ok bool
		if idx, ok = s.retreat(idx); !ok {
			return 0, false
		}
		pos--
	}
}

// matchAt reports whether needle occurs starting at idx.
// The caller guarantees enough bytes remain after idx.
func (s *Store) matchAt(idx localIndex, needle []byte) bool {
	for _, want := range needle {
		if s.blocks[idx.outer][idx.inner] != want {
			return false
		}
		idx = s.advance(idx)
	}
	return true
}
