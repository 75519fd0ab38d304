package editor

import (
	"bytes"
	"io/fs"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/logging"
)

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

var junk = []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}

// newTestSession opens data as "in.bin" on a MemFS with small blocks so
// edits cross block boundaries.
func newTestSession(t *testing.T, data []byte, opts ...Option) (*Session, *MemFS) {
	t.Helper()

	mem := NewMemFS(map[string][]byte{"in.bin": data})
	opts = append([]Option{
		WithFileSystem(mem),
		WithEngineOptions(engine.WithMinBlockSize(8), engine.WithMaxBlockSize(16)),
	}, opts...)

	s := New(opts...)
	require.NoError(t, s.Open("in.bin"))
	return s, mem
}

func typeString(t *testing.T, s *Session, text string) {
	t.Helper()
	for _, r := range text {
		require.NoError(t, s.Type(r))
	}
}

func saved(t *testing.T, s *Session, mem *MemFS) []byte {
	t.Helper()
	require.NoError(t, s.Save("out.bin"))
	data, err := mem.ReadFile("out.bin")
	require.NoError(t, err)
	return data
}

func TestOpen(t *testing.T) {
	s, _ := newTestSession(t, sequence(100))

	assert.Equal(t, "in.bin", s.Path())
	assert.Equal(t, 100, s.Engine().Len())
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.Modified())
	assert.Equal(t, "Opened in.bin (100 bytes)", s.Status())
}

func TestOpenMissing(t *testing.T) {
	s := New(WithFileSystem(NewMemFS(nil)))

	err := s.Open("missing.bin")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "", s.Path())
}

func TestSaveWithoutPath(t *testing.T) {
	s := New(WithFileSystem(NewMemFS(nil)))
	assert.ErrorIs(t, s.Save(""), ErrNoPath)
}

func TestSaveToCurrentPath(t *testing.T) {
	s, mem := newTestSession(t, []byte{1, 2, 3})

	typeString(t, s, "ff")
	assert.True(t, s.Modified())

	require.NoError(t, s.Save(""))
	assert.False(t, s.Modified())

	data, err := mem.ReadFile("in.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 2, 3}, data)
}

func TestEditOverwrite(t *testing.T) {
	original := sequence(0xff)
	want := slices.Clone(original)
	s, mem := newTestSession(t, original)

	typeString(t, s, "AABBCCDDEE")
	copy(want[0:], junk)

	s.Goto(50)
	typeString(t, s, "AABBCCDDEE")
	assert.Equal(t, 55, s.Position())
	copy(want[50:], junk)

	// At the end overwrite appends.
	s.End()
	typeString(t, s, "AABBCCDDEE")
	want = append(want, junk...)

	assert.Equal(t, want, saved(t, s, mem))
}

func TestEditInsert(t *testing.T) {
	original := sequence(0xff)
	want := slices.Clone(original)
	s, mem := newTestSession(t, original)

	s.ToggleInsertMode()
	typeString(t, s, "AABBCCDDEE")
	want = slices.Insert(want, 0, junk...)

	s.Goto(50)
	typeString(t, s, "AABBCCDDEE")
	assert.Equal(t, 55, s.Position())
	want = slices.Insert(want, 50, junk...)

	s.End()
	typeString(t, s, "AABBCCDDEE")
	want = append(want, junk...)

	assert.Equal(t, want, saved(t, s, mem))
}

func TestEditDeleteAndBackspace(t *testing.T) {
	original := sequence(0xff)
	want := slices.Clone(original)
	s, mem := newTestSession(t, original)

	// Backspace at the start does nothing.
	require.NoError(t, s.Delete(true))
	require.NoError(t, s.Delete(true))
	assert.Equal(t, 0, s.Position())

	for range 4 {
		s.Right()
	}
	require.NoError(t, s.Delete(true))
	require.NoError(t, s.Delete(true))
	assert.Equal(t, 0, s.Position())
	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(false))
	assert.Equal(t, 0, s.Position())
	want = slices.Delete(want, 0, 4)

	s.Goto(50)
	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(false))
	assert.Equal(t, 50, s.Position())
	require.NoError(t, s.Delete(true))
	require.NoError(t, s.Delete(true))
	assert.Equal(t, 48, s.Position())
	want = slices.Delete(want, 48, 52)

	// Delete at the end does nothing.
	n := len(want)
	s.End()
	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(false))
	assert.Equal(t, n, s.Position())

	for range 4 {
		s.Left()
	}
	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(true))
	require.NoError(t, s.Delete(true))
	want = want[:n-4]
	assert.Equal(t, len(want), s.Position())

	assert.Equal(t, want, saved(t, s, mem))
}

func TestDeleteEmptyBuffer(t *testing.T) {
	s, _ := newTestSession(t, nil)

	require.NoError(t, s.Delete(false))
	require.NoError(t, s.Delete(true))
	assert.Equal(t, 0, s.Engine().Len())
	assert.False(t, s.Modified())
}

func TestWriteNibble(t *testing.T) {
	s, _ := newTestSession(t, []byte{0x12, 0x34})

	require.NoError(t, s.WriteNibble(0xa))
	assert.Equal(t, []byte{0xa2, 0x34}, s.Engine().Bytes())
	assert.Equal(t, 1, s.Cursor())

	require.NoError(t, s.WriteNibble(0xb))
	assert.Equal(t, []byte{0xab, 0x34}, s.Engine().Bytes())
	assert.Equal(t, 2, s.Cursor())

	// Only the low four bits count.
	require.NoError(t, s.WriteNibble(0xfc))
	assert.Equal(t, []byte{0xab, 0xc4}, s.Engine().Bytes())
}

func TestInsertNibble(t *testing.T) {
	s, _ := newTestSession(t, []byte{0x12, 0x34}, WithInsertMode(true))

	s.Goto(1)
	require.NoError(t, s.WriteNibble(0x5))
	assert.Equal(t, []byte{0x12, 0x50, 0x34}, s.Engine().Bytes())

	require.NoError(t, s.WriteNibble(0x6))
	assert.Equal(t, []byte{0x12, 0x56, 0x34}, s.Engine().Bytes())
	assert.Equal(t, 2, s.Position())
}

func TestTypeRejects(t *testing.T) {
	s, _ := newTestSession(t, []byte{0})

	assert.ErrorIs(t, s.Type('g'), ErrNotHexDigit)

	s.ToggleNibbleMode()
	assert.ErrorIs(t, s.Type('\n'), ErrNotPrintable)
	assert.ErrorIs(t, s.Type('é'), ErrNotPrintable)
	assert.Equal(t, []byte{0}, s.Engine().Bytes())
}

func TestByteMode(t *testing.T) {
	s, _ := newTestSession(t, []byte("abc"), WithNibbleMode(false))

	typeString(t, s, "XY")
	assert.Equal(t, []byte("XYc"), s.Engine().Bytes())
	assert.Equal(t, 4, s.Cursor())

	s.Left()
	assert.Equal(t, 1, s.Position())

	s.ToggleInsertMode()
	typeString(t, s, "-")
	assert.Equal(t, []byte("X-Yc"), s.Engine().Bytes())
}

func TestToggleNibbleModeAligns(t *testing.T) {
	s, _ := newTestSession(t, []byte{1, 2, 3})

	s.Move(3)
	s.ToggleNibbleMode()
	assert.False(t, s.NibbleMode())
	assert.Equal(t, 2, s.Cursor())
}

func TestCursorClamps(t *testing.T) {
	s, _ := newTestSession(t, sequence(40))

	s.Move(-5)
	assert.Equal(t, 0, s.Cursor())

	s.Goto(1000)
	assert.Equal(t, 80, s.Cursor())
	assert.Equal(t, "Going to 1000", s.Status())
}

func TestRowMovement(t *testing.T) {
	s, _ := newTestSession(t, sequence(40), WithLineWidth(16))

	s.Goto(5)
	s.Down()
	assert.Equal(t, 21, s.Position())
	s.Down()
	assert.Equal(t, 37, s.Position())
	s.Down() // clamped to the end
	assert.Equal(t, 40, s.Position())

	s.LineStart()
	assert.Equal(t, 32, s.Position())
	s.LineEnd() // clamped to the end of the buffer
	assert.Equal(t, 80, s.Cursor())

	s.Up()
	s.LineEnd()
	assert.Equal(t, 63, s.Cursor())

	s.Home()
	s.Up()
	assert.Equal(t, 0, s.Cursor())
}

func TestTopCutoff(t *testing.T) {
	s, _ := newTestSession(t, make([]byte, 0x1000))
	require.Equal(t, 0, s.Position())

	moves := [][]func(){
		{s.Right, s.Up, s.Left},
		{s.Down, s.Left, s.Up},
		{s.Down, s.Right, s.Up, s.Up},
	}
	for i, seq := range moves {
		for _, move := range seq {
			move()
		}
		assert.Equal(t, 0, s.Position(), "sequence %d", i)
		assert.Equal(t, 0, s.Cursor(), "sequence %d", i)
	}
}

func TestBottomCutoff(t *testing.T) {
	const size = 0x1000
	s, _ := newTestSession(t, make([]byte, size))

	s.Goto(4100)
	require.Equal(t, size, s.Position())

	moves := [][]func(){
		{s.Left, s.Down, s.Right},
		{s.Up, s.Right, s.Down},
		{s.Up, s.Left, s.Down, s.Down},
	}
	for i, seq := range moves {
		for _, move := range seq {
			move()
		}
		assert.Equal(t, size, s.Position(), "sequence %d", i)
		assert.Equal(t, 2*size, s.Cursor(), "sequence %d", i)
	}
}

func TestCopyPasteInsert(t *testing.T) {
	want := sequence(0xff)
	s, mem := newTestSession(t, want)

	s.ToggleInsertMode()
	typeString(t, s, "AABBCCDDEE")
	want = slices.Insert(want, 0, junk...)

	s.Left()
	s.ToggleSelection()
	s.Home()
	require.NoError(t, s.Copy())
	assert.Equal(t, "Copied 5", s.Status())
	assert.Equal(t, junk, s.Clipboard())

	s.Goto(50)
	require.NoError(t, s.Paste())
	assert.Equal(t, 55, s.Position())
	want = slices.Insert(want, 50, junk...)

	s.End()
	require.NoError(t, s.Paste())
	want = append(want, junk...)

	assert.Equal(t, want, saved(t, s, mem))
}

func TestCopyPasteOverwrite(t *testing.T) {
	want := sequence(0xff)
	s, mem := newTestSession(t, want)

	typeString(t, s, "AABBCCDDEE")
	copy(want, junk)

	s.Left()
	s.ToggleSelection()
	s.Home()
	require.NoError(t, s.Copy())

	s.Goto(50)
	require.NoError(t, s.Paste())
	assert.Equal(t, 55, s.Position())
	copy(want[50:], junk)

	// Past the end overwrite grows the buffer.
	s.Goto(len(want) - 2)
	require.NoError(t, s.Paste())
	want = append(want[:len(want)-2], junk...)
	assert.Equal(t, len(want), s.Position())

	assert.Equal(t, want, saved(t, s, mem))
}

func TestCutPaste(t *testing.T) {
	original := sequence(0xff)
	s, mem := newTestSession(t, original)

	s.ToggleInsertMode()
	typeString(t, s, "AABBCCDDEE")

	s.Left()
	s.ToggleSelection()
	s.Home()
	require.NoError(t, s.Cut())
	assert.Equal(t, "Cut 5", s.Status())
	assert.Equal(t, 0, s.Cursor())

	s.End()
	require.NoError(t, s.Paste())

	assert.Equal(t, append(slices.Clone(original), junk...), saved(t, s, mem))
}

func TestCopyWithoutSelection(t *testing.T) {
	s, _ := newTestSession(t, []byte{1, 2, 3})

	require.NoError(t, s.Copy())
	assert.Empty(t, s.Clipboard())

	require.NoError(t, s.Paste())
	assert.Equal(t, "Nothing to paste", s.Status())
	assert.Equal(t, []byte{1, 2, 3}, s.Engine().Bytes())
}

func TestSelectionIncludesCursor(t *testing.T) {
	s, _ := newTestSession(t, sequence(10))

	s.Goto(6)
	s.ToggleSelection()
	s.Goto(2)

	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, engine.Range{Start: 2, End: 7}, sel)

	s.ToggleSelection()
	_, ok = s.Selection()
	assert.False(t, ok)
}

func TestSelectionAtEnd(t *testing.T) {
	s, _ := newTestSession(t, sequence(10))

	s.Goto(8)
	s.ToggleSelection()
	s.End()

	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, engine.Range{Start: 8, End: 10}, sel)

	s.ToggleSelection()
	s.ToggleSelection() // anchored past the last byte
	sel, ok = s.Selection()
	require.True(t, ok)
	assert.Equal(t, engine.Range{Start: 10, End: 10}, sel)
}

func TestTypingReplacesSelection(t *testing.T) {
	s, _ := newTestSession(t, sequence(8))

	s.Goto(2)
	s.ToggleSelection()
	s.Goto(4)
	require.NoError(t, s.WriteNibble(0xf))

	assert.Equal(t, []byte{0, 1, 0xf5, 6, 7}, s.Engine().Bytes())
	_, ok := s.Selection()
	assert.False(t, ok)
}

func TestDeleteSelection(t *testing.T) {
	s, _ := newTestSession(t, sequence(8))

	s.Goto(5)
	s.ToggleSelection()
	s.Goto(3)
	require.NoError(t, s.Delete(true))

	assert.Equal(t, []byte{0, 1, 2, 6, 7}, s.Engine().Bytes())
	assert.Equal(t, 3, s.Position())
}

func TestUndo(t *testing.T) {
	original := sequence(32)
	s, _ := newTestSession(t, original)

	s.Goto(4)
	typeString(t, s, "ff")
	s.ToggleInsertMode()
	typeString(t, s, "0102")
	s.Goto(20)
	require.NoError(t, s.Delete(false))
	assert.NotEqual(t, original, s.Engine().Bytes())

	require.NoError(t, s.Undo())
	assert.Equal(t, 20, s.Position())

	for s.Engine().CanUndo() {
		require.NoError(t, s.Undo())
	}
	assert.Equal(t, original, s.Engine().Bytes())
	assert.Equal(t, 4, s.Position())

	require.NoError(t, s.Undo())
	assert.Equal(t, "Nothing to undo", s.Status())
}

func TestUndoPaste(t *testing.T) {
	original := sequence(16)
	s, _ := newTestSession(t, original)

	s.ToggleSelection()
	s.Goto(3)
	require.NoError(t, s.Copy())

	s.Goto(14)
	require.NoError(t, s.Paste())
	assert.Equal(t, 18, s.Engine().Len())

	require.NoError(t, s.Undo())
	assert.Equal(t, original, s.Engine().Bytes())
	assert.Equal(t, 14, s.Position())
}

func TestFind(t *testing.T) {
	s, _ := newTestSession(t, []byte("hello world hello"))

	assert.True(t, s.Find([]byte("hello")))
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, "Found at 0", s.Status())

	s.Right()
	s.Right()
	assert.True(t, s.Find([]byte("hello")))
	assert.Equal(t, 12, s.Position())

	s.Goto(13)
	assert.True(t, s.Find([]byte("hello")))
	assert.Equal(t, 0, s.Position())

	assert.False(t, s.Find([]byte("absent")))
	assert.Equal(t, "Nothing found!", s.Status())
	assert.Equal(t, 0, s.Position())
}

func TestReadOnlyEngine(t *testing.T) {
	eng := engine.NewFromBytes([]byte{1, 2}, engine.WithReadOnly())
	s := New(WithEngine(eng))

	assert.ErrorIs(t, s.WriteNibble(3), engine.ErrReadOnly)
	assert.ErrorIs(t, s.Delete(false), engine.ErrReadOnly)
	assert.False(t, s.Modified())
	assert.Equal(t, []byte{1, 2}, eng.Bytes())
}

func TestStatusLog(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestSession(t, []byte("abc"), WithLogger(logging.New(&buf, slog.LevelInfo, logging.FormatText)))

	s.Goto(1)
	s.Find([]byte("zz"))

	assert.Equal(t, []string{"Opened in.bin (3 bytes)", "Going to 1", "Nothing found!"}, s.StatusLog())
	assert.Contains(t, buf.String(), `msg="Going to 1"`)
	assert.Contains(t, buf.String(), "path=in.bin")
}
