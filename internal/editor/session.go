package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/logging"
)

// Session is an interactive editing session over one buffer.
type Session struct {
	eng        *engine.Engine
	engineOpts []engine.Option
	fs         FileSystem
	logger     *slog.Logger

	path     string
	modified bool

	// Cursor and selection anchor, in nibbles.
	cursor    int
	selStart  int
	selecting bool

	insertMode bool
	nibbleMode bool
	lineWidth  int

	clipboard []byte
	statusLog []string
}

// New creates a session editing an empty buffer.
func New(opts ...Option) *Session {
	s := &Session{
		fs:         OSFS{},
		logger:     logging.Discard(),
		nibbleMode: true,
		lineWidth:  DefaultLineWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.eng == nil {
		s.eng = engine.New(s.newEngineOptions()...)
	}
	return s
}

func (s *Session) newEngineOptions() []engine.Option {
	return append([]engine.Option{engine.WithLogger(s.logger)}, s.engineOpts...)
}

// Engine returns the engine holding the buffer.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Path returns the file the session was opened from or last saved to.
func (s *Session) Path() string {
	return s.path
}

// Modified reports whether the buffer changed since it was opened or saved.
func (s *Session) Modified() bool {
	return s.modified
}

// ============================================================================
// Files
// ============================================================================

// Open replaces the buffer with the content of the file at path. The undo
// history and selection are reset.
func (s *Session) Open(path string) error {
	r, err := s.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	eng, err := engine.NewFromReader(r, s.newEngineOptions()...)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	s.eng = eng
	s.path = path
	s.modified = false
	s.selecting = false
	s.SetCursor(0)
	s.status(fmt.Sprintf("Opened %s (%d bytes)", path, eng.Len()))
	return nil
}

// Save writes the buffer to path. An empty path saves to the current file.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}

	w, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	n, err := s.eng.WriteTo(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.path = path
	s.modified = false
	s.status(fmt.Sprintf("Saved %d bytes to %s", n, path))
	return nil
}

// ============================================================================
// Cursor
// ============================================================================

// Cursor returns the cursor position in nibbles.
func (s *Session) Cursor() int {
	return s.cursor
}

// Position returns the byte offset under the cursor.
func (s *Session) Position() int {
	return s.cursor / 2
}

// SetCursor moves the cursor to the given nibble, clamped to [0, 2*Len].
func (s *Session) SetCursor(nibble int) {
	s.cursor = max(0, min(nibble, 2*s.eng.Len()))
}

// Move moves the cursor by delta nibbles.
func (s *Session) Move(delta int) {
	s.SetCursor(s.cursor + delta)
}

// Goto moves the cursor to the high nibble of byte offset.
func (s *Session) Goto(offset int) {
	s.status(fmt.Sprintf("Going to %d", offset))
	s.SetCursor(offset * 2)
}

// step is the horizontal cursor step: one nibble or one byte.
func (s *Session) step() int {
	if s.nibbleMode {
		return 1
	}
	return 2
}

// Left moves the cursor back one step.
func (s *Session) Left() { s.Move(-s.step()) }

// Right moves the cursor forward one step.
func (s *Session) Right() { s.Move(s.step()) }

// Up moves the cursor one row back, stopping at the start of the buffer.
func (s *Session) Up() { s.Move(-2 * s.lineWidth) }

// Down moves the cursor one row forward, stopping past the last byte.
func (s *Session) Down() { s.Move(2 * s.lineWidth) }

// LineStart moves the cursor to the first byte of its row.
func (s *Session) LineStart() {
	s.SetCursor(s.cursor - s.cursor%(2*s.lineWidth))
}

// LineEnd moves the cursor to the last position of its row.
func (s *Session) LineEnd() {
	start := s.cursor - s.cursor%(2*s.lineWidth)
	s.SetCursor(start + 2*s.lineWidth - s.step())
}

// Home moves the cursor to the start of the buffer.
func (s *Session) Home() { s.SetCursor(0) }

// End moves the cursor past the last byte.
func (s *Session) End() { s.SetCursor(2 * s.eng.Len()) }

func (s *Session) atEnd() bool {
	return s.cursor == 2*s.eng.Len()
}

// ============================================================================
// Modes
// ============================================================================

// InsertMode reports whether typing inserts rather than overwrites.
func (s *Session) InsertMode() bool {
	return s.insertMode
}

// ToggleInsertMode switches between insert and overwrite.
func (s *Session) ToggleInsertMode() {
	s.insertMode = !s.insertMode
	s.Move(0)
}

// NibbleMode reports whether typing enters hex nibbles rather than bytes.
func (s *Session) NibbleMode() bool {
	return s.nibbleMode
}

// ToggleNibbleMode switches between nibble and byte entry. Byte entry
// keeps the cursor on a byte boundary.
func (s *Session) ToggleNibbleMode() {
	s.nibbleMode = !s.nibbleMode
	if !s.nibbleMode {
		s.SetCursor(s.cursor &^ 1)
	}
}

// ============================================================================
// Editing
// ============================================================================

// Type enters r at the cursor. In nibble mode r must be a hex digit, in
// byte mode printable ASCII.
func (s *Session) Type(r rune) error {
	if s.nibbleMode {
		v, ok := hexValue(r)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotHexDigit, r)
		}
		return s.WriteNibble(v)
	}
	if r < 0x20 || r > 0x7e {
		return fmt.Errorf("%w: %q", ErrNotPrintable, r)
	}
	return s.WriteByte(byte(r))
}

func hexValue(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}

// WriteNibble writes the low four bits of v at the cursor and advances
// one nibble. An active selection is deleted first.
//
// In insert mode, or at the end of the buffer, a high nibble inserts a new
// byte and the following low nibble fills it in. Otherwise the nibble
// under the cursor is replaced.
func (s *Session) WriteNibble(v byte) error {
	if s.selecting {
		if err := s.Delete(false); err != nil {
			return err
		}
	}

	v &= 0x0f
	var err error
	if (s.insertMode || s.atEnd()) && s.cursor&1 == 0 {
		_, err = s.eng.Insert(s.Position(), []byte{v << 4})
	} else {
		err = s.setNibble(v)
	}
	if err != nil {
		return err
	}

	s.modified = true
	s.Move(1)
	return nil
}

func (s *Session) setNibble(v byte) error {
	pos := s.Position()
	b, err := s.eng.ByteAt(pos)
	if err != nil {
		return err
	}
	if s.cursor&1 == 0 {
		b = b&0x0f | v<<4
	} else {
		b = b&0xf0 | v
	}
	_, err = s.eng.Overwrite(pos, []byte{b})
	return err
}

// WriteByte writes b at the cursor and advances one byte. An active
// selection is deleted first.
func (s *Session) WriteByte(b byte) error {
	if s.selecting {
		if err := s.Delete(false); err != nil {
			return err
		}
	}

	pos := s.Position()
	var err error
	if s.insertMode || s.atEnd() {
		_, err = s.eng.Insert(pos, []byte{b})
	} else {
		_, err = s.eng.Overwrite(pos, []byte{b})
	}
	if err != nil {
		return err
	}

	s.modified = true
	s.SetCursor(2 * (pos + 1))
	return nil
}

// Delete removes the selection or, without one, the byte under the cursor.
// With backspace set the byte before the cursor is removed instead.
// Deleting at the end of the buffer does nothing.
func (s *Session) Delete(backspace bool) error {
	cur := s.cursor
	anchor := cur
	switch {
	case s.selecting:
		anchor = s.selStart
	case backspace:
		if cur < 2 {
			return nil
		}
		cur -= 2
		anchor = cur
	}

	start := min(anchor, cur) / 2
	stop := max(anchor, cur)/2 + 1
	if stop > s.eng.Len() {
		stop--
		if stop == start {
			return nil
		}
	}
	if s.eng.IsEmpty() {
		s.status("Nothing to delete")
		return nil
	}

	s.selecting = false
	if _, err := s.eng.Delete(start, stop); err != nil {
		return err
	}
	s.modified = true
	s.SetCursor(start * 2)
	return nil
}

// Undo reverts the last edit and moves the cursor to where it happened.
func (s *Session) Undo() error {
	offset, err := s.eng.Undo()
	if errors.Is(err, engine.ErrNothingToUndo) {
		s.status("Nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}

	s.modified = true
	s.SetCursor(offset * 2)
	return nil
}

// ============================================================================
// Selection and clipboard
// ============================================================================

// ToggleSelection starts a selection at the cursor, or drops the current
// one.
func (s *Session) ToggleSelection() {
	s.selecting = !s.selecting
	s.selStart = s.cursor
	if s.selecting {
		s.status(fmt.Sprintf("selection = %d", s.selStart/2))
	} else {
		s.status("selection = none")
	}
}

// Selection returns the selected bytes. Both the anchor byte and the byte
// under the cursor are included.
func (s *Session) Selection() (engine.Range, bool) {
	if !s.selecting {
		return engine.Range{}, false
	}
	sel := engine.Range{
		Start: min(s.selStart, s.cursor) / 2,
		End:   max(s.selStart, s.cursor)/2 + 1,
	}
	return sel.Clamp(s.eng.Len()), true
}

// Clipboard returns a copy of the clipboard contents.
func (s *Session) Clipboard() []byte {
	return append([]byte(nil), s.clipboard...)
}

func (s *Session) copySelection() (engine.Range, bool, error) {
	sel, ok := s.Selection()
	if !ok {
		return sel, false, nil
	}
	data, err := s.eng.Read(sel.Start, sel.End)
	if err != nil {
		return sel, false, err
	}
	s.clipboard = data
	return sel, true, nil
}

// Copy puts the selection on the clipboard and ends the selection.
func (s *Session) Copy() error {
	sel, ok, err := s.copySelection()
	if err != nil || !ok {
		return err
	}
	s.selecting = false
	s.status(fmt.Sprintf("Copied %d", sel.Len()))
	return nil
}

// Cut puts the selection on the clipboard and deletes it.
func (s *Session) Cut() error {
	sel, ok, err := s.copySelection()
	if err != nil || !ok {
		return err
	}
	s.selecting = false
	if !sel.IsEmpty() {
		if _, err := s.eng.Delete(sel.Start, sel.End); err != nil {
			return err
		}
		s.modified = true
	}
	s.SetCursor(sel.Start * 2)
	s.status(fmt.Sprintf("Cut %d", sel.Len()))
	return nil
}

// Paste inserts the clipboard at the cursor in insert mode, or writes over
// the bytes at the cursor in overwrite mode, growing the buffer when the
// clipboard runs past the end. The cursor lands after the pasted bytes.
func (s *Session) Paste() error {
	if len(s.clipboard) == 0 {
		s.status("Nothing to paste")
		return nil
	}

	pos := s.Position()
	data := s.Clipboard()
	var err error
	if s.insertMode {
		_, err = s.eng.Insert(pos, data)
	} else {
		_, err = s.eng.Splice(pos, pos+len(data), data)
	}
	if err != nil {
		return err
	}

	s.modified = true
	s.SetCursor(2 * (pos + len(data)))
	s.status(fmt.Sprintf("Pasted %d", len(data)))
	return nil
}

// ============================================================================
// Search
// ============================================================================

// Find moves the cursor to the next occurrence of needle at or after the
// cursor, wrapping around to the start of the buffer.
func (s *Session) Find(needle []byte) bool {
	pos, ok := s.eng.FindNext(needle, s.Position())
	if !ok {
		s.status("Nothing found!")
		return false
	}
	s.status(fmt.Sprintf("Found at %d", pos))
	s.SetCursor(pos * 2)
	return true
}

// ============================================================================
// Status
// ============================================================================

func (s *Session) status(msg string) {
	s.statusLog = append(s.statusLog, msg)
	s.logger.Info(msg, "path", s.path, "cursor", s.cursor)
}

// Status returns the most recent status message.
func (s *Session) Status() string {
	if len(s.statusLog) == 0 {
		return ""
	}
	return s.statusLog[len(s.statusLog)-1]
}

// StatusLog returns every status message in order.
func (s *Session) StatusLog() []string {
	return append([]string(nil), s.statusLog...)
}
