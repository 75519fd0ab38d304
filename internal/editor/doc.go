// Package editor implements a headless hex editing session on top of the
// engine package.
//
// A Session tracks a cursor measured in nibbles, so that cursor 2n sits on
// the high nibble of byte n and 2n+1 on its low nibble. The cursor ranges
// over [0, 2*Len]; the final position appends to the buffer.
//
// Edits go through the engine so that every keystroke can be undone:
//
//	s := editor.New(editor.WithFileSystem(editor.OSFS{}))
//	if err := s.Open("firmware.bin"); err != nil {
//		return err
//	}
//	s.Goto(0x40)
//	s.WriteNibble(0xa)
//	s.Undo()
//
// Sessions are not safe for concurrent use. The engine underneath is.
package editor
