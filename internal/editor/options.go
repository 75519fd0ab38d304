package editor

import (
	"log/slog"

	"github.com/dshills/hexstorm/internal/engine"
)

// DefaultLineWidth is the number of bytes per row used for vertical
// movement.
const DefaultLineWidth = 16

// Option configures a Session.
type Option func(*Session)

// WithFileSystem sets the file system used by Open and Save.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Session) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the logger status messages are written to. It is also
// passed to engines the session creates.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInsertMode starts the session in insert mode.
func WithInsertMode(on bool) Option {
	return func(s *Session) {
		s.insertMode = on
	}
}

// WithNibbleMode starts the session editing nibbles (true) or whole bytes.
func WithNibbleMode(on bool) Option {
	return func(s *Session) {
		s.nibbleMode = on
	}
}

// WithLineWidth sets the bytes per row.
func WithLineWidth(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.lineWidth = n
		}
	}
}

// WithEngineOptions sets the options for every engine the session creates.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Session) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithEngine edits an existing engine instead of an empty one.
func WithEngine(e *engine.Engine) Option {
	return func(s *Session) {
		s.eng = e
	}
}
