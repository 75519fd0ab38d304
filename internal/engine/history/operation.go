package history

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dshills/hexstorm/internal/engine/block"
)

// Range is an alias for block.Range for convenience.
type Range = block.Range

// Kind classifies an operation by the shape of its range and data.
type Kind uint8

const (
	KindNoop Kind = iota
	KindInsert
	KindDelete
	KindOverwrite
	KindSplice
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "Insert"
	case KindDelete:
		return "Delete"
	case KindOverwrite:
		return "Overwrite"
	case KindSplice:
		return "Splice"
	default:
		return "Noop"
	}
}

// Operation is a single undoable edit: the bytes in Range are replaced by
// Data.
type Operation struct {
	Range       Range
	Data        []byte
	Description string    // Human-readable label; Kind is used when empty
	Timestamp   time.Time // When the operation was created
}

// NewInsert creates an operation inserting data at offset.
func NewInsert(offset int, data []byte) *Operation {
	return &Operation{
		Range:     block.NewRange(offset, offset),
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewDelete creates an operation removing [start, end).
func NewDelete(start, end int) *Operation {
	return &Operation{
		Range:     block.NewRange(start, end),
		Timestamp: time.Now(),
	}
}

// NewOverwrite creates an operation replacing len(data) bytes at offset.
// Applied past the end of the buffer it behaves as a splice and grows it.
func NewOverwrite(offset int, data []byte) *Operation {
	return &Operation{
		Range:     block.NewRange(offset, offset+len(data)),
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewSplice creates an operation replacing [start, end) with data.
func NewSplice(start, end int, data []byte) *Operation {
	return &Operation{
		Range:     block.NewRange(start, end),
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Kind reports what the operation does.
func (op *Operation) Kind() Kind {
	switch {
	case op.Range.IsEmpty() && len(op.Data) == 0:
		return KindNoop
	case op.Range.IsEmpty():
		return KindInsert
	case len(op.Data) == 0:
		return KindDelete
	case op.Range.Len() == len(op.Data):
		return KindOverwrite
	default:
		return KindSplice
	}
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool { return op.Kind() == KindInsert }

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool { return op.Kind() == KindDelete }

// IsOverwrite returns true if this operation keeps the buffer length.
func (op *Operation) IsOverwrite() bool { return op.Kind() == KindOverwrite }

// IsNoop returns true if this operation makes no changes.
func (op *Operation) IsNoop() bool { return op.Kind() == KindNoop }

// BytesDelta returns the change in buffer length, assuming the whole
// range lies inside the buffer.
func (op *Operation) BytesDelta() int {
	return len(op.Data) - op.Range.Len()
}

// Affected returns the region touched by the operation. It spans the
// longer of the removed range and the inserted data.
func (op *Operation) Affected() Range {
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + max(len(op.Data), op.Range.Len()),
	}
}

// Label returns Description, or the kind name when no description is set.
func (op *Operation) Label() string {
	if op.Description != "" {
		return op.Description
	}
	return op.Kind().String()
}

// Clone creates a deep copy of the operation.
func (op *Operation) Clone() *Operation {
	clone := *op
	if op.Data != nil {
		clone.Data = bytes.Clone(op.Data)
	}
	return &clone
}

func (op *Operation) String() string {
	return fmt.Sprintf("%s %v (%d bytes)", op.Kind(), op.Range, len(op.Data))
}

// OperationInfo provides read-only info about a logged operation.
// Used for displaying the undo history to users.
type OperationInfo struct {
	Description string    // Label of the edit the entry reverts
	Timestamp   time.Time // When the entry was recorded
	Range       Range     // Range the undo will replace
	BytesDelta  int       // Length change the undo will cause
}

func infoOf(op *Operation) OperationInfo {
	return OperationInfo{
		Description: op.Label(),
		Timestamp:   op.Timestamp,
		Range:       op.Range,
		BytesDelta:  op.BytesDelta(),
	}
}
