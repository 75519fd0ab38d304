package block

// Block size defaults.
const (
	// DefaultMinBlockSize is the granularity blocks are split at.
	DefaultMinBlockSize = 1024 * 1024

	// DefaultMaxBlockSize is the largest a block may be after an insertion.
	DefaultMaxBlockSize = 4 * 1024 * 1024
)

// Option configures a Store during creation.
type Option func(*Store)

// WithMinBlockSize sets the split granularity.
func WithMinBlockSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.minBlock = size
		}
	}
}

// WithMaxBlockSize sets the maximum block size.
func WithMaxBlockSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.maxBlock = size
		}
	}
}

// WithBlockSizes sets both block size bounds.
func WithBlockSizes(min, max int) Option {
	return func(s *Store) {
		WithMinBlockSize(min)(s)
		WithMaxBlockSize(max)(s)
	}
}

// normalizeSizes keeps the maximum strictly above the minimum so that
// splitting an oversized block always makes progress.
func (s *Store) normalizeSizes() {
	if s.maxBlock <= s.minBlock {
		s.maxBlock = 2 * s.minBlock
	}
}
