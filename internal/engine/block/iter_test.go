package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRange(t *testing.T, s *Store, start, end int) ([]byte, []int) {
	t.Helper()
	it, err := s.IterRange(start, end)
	require.NoError(t, err)

	var values []byte
	var offsets []int
	for it.Next() {
		values = append(values, it.Byte())
		offsets = append(offsets, it.Offset())
	}
	return values, offsets
}

func TestIterRange(t *testing.T) {
	s := FromBlocks([][]byte{{1, 2, 3}, {4}, {5, 6}})

	values, offsets := collectRange(t, s, 1, 5)
	assert.Equal(t, []byte{2, 3, 4, 5}, values)
	assert.Equal(t, []int{1, 2, 3, 4}, offsets)
}

func TestIterRangeFull(t *testing.T) {
	s := FromBlocks([][]byte{{1, 2, 3}, {4}, {5, 6}})

	values, _ := collectRange(t, s, 0, s.Len())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, values)
}

func TestIterRangeEmpty(t *testing.T) {
	s := FromBytes([]byte{1, 2, 3})

	values, _ := collectRange(t, s, 3, 3)
	assert.Empty(t, values)

	values, _ = collectRange(t, New(), 0, 0)
	assert.Empty(t, values)
}

func TestIterRangeInvalid(t *testing.T) {
	s := FromBytes([]byte{1, 2, 3})

	_, err := s.IterRange(2, 1)
	assert.ErrorIs(t, err, ErrRangeInvalid)

	_, err = s.IterRange(0, 4)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestIterRangeRestartable(t *testing.T) {
	s := FromBlocks([][]byte{{1, 2}, {3}})

	first, _ := collectRange(t, s, 0, 3)
	second, _ := collectRange(t, s, 0, 3)
	assert.Equal(t, first, second)
}

func TestIterFrom(t *testing.T) {
	s := FromBlocks([][]byte{{1, 2}, {3, 4}})

	it, err := s.IterFrom(1)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Remaining())

	var values []byte
	for it.Next() {
		values = append(values, it.Byte())
	}
	assert.Equal(t, []byte{2, 3, 4}, values)
	assert.Equal(t, 0, it.Remaining())
	assert.False(t, it.Next())
}

func TestBlocks(t *testing.T) {
	s := FromBlocks([][]byte{{1, 2}, {3}, {4, 5, 6}})

	var blocks [][]byte
	var offsets, indexes []int
	it := s.Blocks()
	for it.Next() {
		blocks = append(blocks, it.Block())
		offsets = append(offsets, it.Offset())
		indexes = append(indexes, it.Index())
	}

	assert.Equal(t, [][]byte{{1, 2}, {3}, {4, 5, 6}}, blocks)
	assert.Equal(t, []int{0, 2, 3}, offsets)
	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Nil(t, it.Block())
}

func TestBlocksEmpty(t *testing.T) {
	it := New().Blocks()
	assert.False(t, it.Next())
}
