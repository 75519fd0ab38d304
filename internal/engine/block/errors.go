package block

import (
	"errors"
	"fmt"
)

// Errors returned by store operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the current content.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates a range whose end is before its start.
	ErrRangeInvalid = errors.New("invalid range")
)

func outOfRange(offset, length int) error {
	return fmt.Errorf("%w: offset %d, length %d", ErrOffsetOutOfRange, offset, length)
}

func invalidRange(start, end int) error {
	return fmt.Errorf("%w: end %d is before start %d", ErrRangeInvalid, end, start)
}
