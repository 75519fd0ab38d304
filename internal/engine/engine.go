package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/hexstorm/internal/engine/block"
	"github.com/dshills/hexstorm/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Range represents a byte range in the buffer.
	Range = block.Range

	// Operation is an undoable edit.
	Operation = history.Operation

	// OperationInfo describes an entry on the undo stack.
	OperationInfo = history.OperationInfo

	// Checkpoint marks a depth of the undo stack.
	Checkpoint = history.Checkpoint
)

// Engine is the main facade for the hex editor engine.
// It combines the block store and the undo log into a single API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	id     uuid.UUID
	store  *block.Store
	log    *history.Log
	logger *slog.Logger

	// Configuration
	minBlockSize   int
	maxBlockSize   int
	maxUndoEntries int
	readOnly       bool
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		id:           uuid.New(),
		minBlockSize: block.DefaultMinBlockSize,
		maxBlockSize: block.DefaultMaxBlockSize,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("engine", e.id.String())
	return e
}

func (e *Engine) storeOptions() []block.Option {
	return []block.Option{block.WithBlockSizes(e.minBlockSize, e.maxBlockSize)}
}

func (e *Engine) attach(store *block.Store) {
	e.store = store
	e.log = history.NewLog(store, history.WithMaxEntries(e.maxUndoEntries))
}

// New creates an empty Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.attach(block.New(e.storeOptions()...))
	return e
}

// NewFromBytes creates an Engine holding data. The engine takes ownership
// of the slice.
func NewFromBytes(data []byte, opts ...Option) *Engine {
	e := newEngine(opts)
	e.attach(block.FromBytes(data, e.storeOptions()...))
	return e
}

// NewFromReader creates an Engine from an io.Reader. The content is read
// in chunks of the minimum block size so that no block exceeds the maximum.
// A short final chunk is copied so it does not pin a full-size buffer.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	var blocks [][]byte
	for {
		chunk := make([]byte, e.minBlockSize)
		n, err := io.ReadFull(r, chunk)
		switch {
		case n == len(chunk):
			blocks = append(blocks, chunk)
		case n > 0:
			blocks = append(blocks, bytes.Clone(chunk[:n]))
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
	}

	store := block.FromBlocks(blocks, e.storeOptions()...)
	e.attach(store)
	e.logger.Debug("loaded", "bytes", store.Len(), "blocks", store.BlockCount())
	return e, nil
}

// ID returns the unique identifier of this engine.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// ============================================================================
// Read Operations
// ============================================================================

// Len returns the buffer length in bytes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

// IsEmpty returns true if the buffer holds no bytes.
func (e *Engine) IsEmpty() bool {
	return e.Len() == 0
}

// ByteAt returns the byte at the given offset.
func (e *Engine) ByteAt(offset int) (byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Get(offset)
}

// Read returns a copy of the bytes in [start, end).
func (e *Engine) Read(start, end int) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.CopyOut(start, end)
}

// Bytes returns a copy of the whole buffer.
// For large buffers, prefer WriteTo or Blocks.
func (e *Engine) Bytes() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Bytes()
}

// Find returns the offset of the first occurrence of needle at or after from.
func (e *Engine) Find(needle []byte, from int) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Find(needle, from)
}

// FindBackward returns the offset of the last occurrence of needle starting
// at or before from.
func (e *Engine) FindBackward(needle []byte, from int) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.FindBackward(needle, from)
}

// FindNext searches from the given offset and, when nothing is found,
// wraps around to the start of the buffer.
func (e *Engine) FindNext(needle []byte, from int) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if pos, ok := e.store.Find(needle, from); ok {
		return pos, true
	}
	return e.store.Find(needle, 0)
}

// Blocks calls fn for each block in order with the block's starting
// offset. Iteration stops when fn returns false. The slice passed to fn
// must not be retained or modified.
func (e *Engine) Blocks(fn func(offset int, data []byte) bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	it := e.store.Blocks()
	for it.Next() {
		if !fn(it.Offset(), it.Block()) {
			return
		}
	}
}

// BlockLens returns the length of every block.
func (e *Engine) BlockLens() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.BlockLens()
}

// WriteTo writes the buffer to w block by block.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.WriteTo(w)
}

// MinBlockSize returns the minimum block size in effect.
func (e *Engine) MinBlockSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.MinBlockSize()
}

// MaxBlockSize returns the maximum block size in effect.
func (e *Engine) MaxBlockSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.MaxBlockSize()
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts data at offset. It returns the affected range.
func (e *Engine) Insert(offset int, data []byte) (Range, error) {
	return e.Apply(history.NewInsert(offset, data))
}

// Delete removes [start, end). The end is clamped to the buffer length.
func (e *Engine) Delete(start, end int) (Range, error) {
	return e.Apply(history.NewDelete(start, end))
}

// Overwrite replaces len(data) bytes at offset. The bytes must already
// exist; use Splice to write past the end.
func (e *Engine) Overwrite(offset int, data []byte) (Range, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return Range{}, ErrReadOnly
	}
	if end := offset + len(data); end > e.store.Len() {
		return Range{}, fmt.Errorf("overwrite at %d: end %d beyond length %d: %w",
			offset, end, e.store.Len(), ErrOffsetOutOfRange)
	}
	return e.applyLocked(history.NewOverwrite(offset, data))
}

// Splice replaces [start, end) with data. The end is clamped to the buffer
// length.
func (e *Engine) Splice(start, end int, data []byte) (Range, error) {
	return e.Apply(history.NewSplice(start, end, data))
}

// Apply performs op and records its inverse in the undo log.
func (e *Engine) Apply(op *Operation) (Range, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(op)
}

func (e *Engine) applyLocked(op *Operation) (Range, error) {
	if e.readOnly {
		return Range{}, ErrReadOnly
	}

	begin, end, err := e.log.Apply(op, true)
	if err != nil {
		return Range{}, err
	}

	e.logger.Debug("apply",
		"op", op.Label(),
		"start", begin,
		"end", end,
		"bytes", len(op.Data),
	)
	return Range{Start: begin, End: end}, nil
}

// ============================================================================
// Undo Operations
// ============================================================================

// Undo reverts the most recent operation and returns the offset where it
// started.
func (e *Engine) Undo() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	offset, ok, err := e.log.Undo()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNothingToUndo
	}

	e.logger.Debug("undo", "offset", offset, "remaining", e.log.Len())
	return offset, nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.CanUndo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Len()
}

// UndoEntries returns info about the undo stack, oldest first.
func (e *Engine) UndoEntries() []OperationInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Entries()
}

// Checkpoint marks the current undo depth.
func (e *Engine) Checkpoint() Checkpoint {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Checkpoint()
}

// UndoToCheckpoint undoes every operation recorded since cp.
func (e *Engine) UndoToCheckpoint(cp Checkpoint) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	return e.log.UndoToCheckpoint(cp)
}

// ClearHistory removes all undo history.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Clear()
}

// ============================================================================
// Configuration
// ============================================================================

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Logger returns the engine's logger, tagged with its ID.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// ============================================================================
// Clear and Reset
// ============================================================================

// Clear removes all content from the buffer and resets history.
func (e *Engine) Clear() error {
	return e.SetContent(nil)
}

// SetContent replaces all content and resets history. The engine takes
// ownership of data.
func (e *Engine) SetContent(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.attach(block.FromBytes(data, e.storeOptions()...))
	return nil
}

func (e *Engine) String() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fmt.Sprintf("Engine{id: %s, len: %d, blocks: %d, undo: %d}",
		e.id, e.store.Len(), e.store.BlockCount(), e.log.Len())
}
