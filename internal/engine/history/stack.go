package history

import (
	"errors"
	"fmt"
)

// ErrNothingToUndo indicates the undo stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Splicer is the buffer an operation log edits. *block.Store satisfies it.
type Splicer interface {
	// Splice replaces [start, end) with data and returns the removed bytes.
	// end is clamped to the buffer length.
	Splice(start, end int, data []byte) ([]byte, error)
}

// overwriter is implemented by buffers that can replace bytes in place
// without restructuring their storage.
type overwriter interface {
	Overwrite(offset int, data []byte) ([]byte, error)
	Len() int
}

// Option configures a Log.
type Option func(*Log)

// WithMaxEntries caps the undo stack. Zero or negative means unbounded.
// When the cap is exceeded the oldest entries are dropped.
func WithMaxEntries(n int) Option {
	return func(l *Log) {
		l.maxEntries = max(n, 0)
	}
}

// Log applies operations to a buffer and keeps the stack of inverse
// operations needed to revert them.
type Log struct {
	target     Splicer
	undoStack  []*Operation
	maxEntries int
}

// NewLog creates an empty log editing target.
func NewLog(target Splicer, opts ...Option) *Log {
	l := &Log{target: target}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Apply performs op on the buffer and returns the affected region
// [begin, end). With recordUndo set, the inverse operation is pushed onto
// the stack.
func (l *Log) Apply(op *Operation, recordUndo bool) (begin, end int, err error) {
	removed, err := l.perform(op)
	if err != nil {
		return 0, 0, fmt.Errorf("%s at %d: %w", op.Kind(), op.Range.Start, err)
	}

	if recordUndo && !op.IsNoop() {
		l.Push(&Operation{
			Range:       Range{Start: op.Range.Start, End: op.Range.Start + len(op.Data)},
			Data:        removed,
			Description: op.Label(),
			Timestamp:   op.Timestamp,
		})
	}

	affected := op.Affected()
	return affected.Start, affected.End, nil
}

func (l *Log) perform(op *Operation) ([]byte, error) {
	if op.IsOverwrite() {
		// An overwrite running past the end grows the buffer, which only
		// Splice can do.
		if ow, ok := l.target.(overwriter); ok && op.Range.End <= ow.Len() {
			return ow.Overwrite(op.Range.Start, op.Data)
		}
	}
	return l.target.Splice(op.Range.Start, op.Range.End, op.Data)
}

// Push adds an operation to the undo stack without applying it.
func (l *Log) Push(op *Operation) {
	l.undoStack = append(l.undoStack, op)

	if l.maxEntries > 0 && len(l.undoStack) > l.maxEntries {
		excess := len(l.undoStack) - l.maxEntries
		clear(l.undoStack[:excess])
		l.undoStack = l.undoStack[excess:]
	}
}

// Undo pops the most recent entry and applies it. It returns the start
// offset of the reverted region. ok is false when the stack is empty.
// If the buffer rejects the operation the entry stays on the stack.
func (l *Log) Undo() (offset int, ok bool, err error) {
	if len(l.undoStack) == 0 {
		return 0, false, nil
	}

	last := len(l.undoStack) - 1
	op := l.undoStack[last]

	begin, _, err := l.Apply(op, false)
	if err != nil {
		return 0, false, fmt.Errorf("undo %q: %w", op.Label(), err)
	}

	l.undoStack[last] = nil
	l.undoStack = l.undoStack[:last]
	return begin, true, nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return len(l.undoStack) > 0
}

// Len returns the number of entries on the stack.
func (l *Log) Len() int {
	return len(l.undoStack)
}

// Clear removes all undo history.
func (l *Log) Clear() {
	l.undoStack = nil
}

// Peek returns info about the next undo entry without removing it.
func (l *Log) Peek() (OperationInfo, bool) {
	if len(l.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return infoOf(l.undoStack[len(l.undoStack)-1]), true
}

// Entries returns info about every entry, oldest first.
func (l *Log) Entries() []OperationInfo {
	result := make([]OperationInfo, len(l.undoStack))
	for i, op := range l.undoStack {
		result[i] = infoOf(op)
	}
	return result
}

// MaxEntries returns the stack cap, or zero when unbounded.
func (l *Log) MaxEntries() int {
	return l.maxEntries
}
