package engine

import "log/slog"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMinBlockSize sets the granularity the block store splits at.
func WithMinBlockSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.minBlockSize = size
		}
	}
}

// WithMaxBlockSize sets the largest a block may grow to.
func WithMaxBlockSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.maxBlockSize = size
		}
	}
}

// WithMaxUndoEntries caps the undo history. Zero keeps it unbounded.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max >= 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
