package editor

import "errors"

var (
	// ErrNotHexDigit is returned when a non-hex rune is typed in nibble mode.
	ErrNotHexDigit = errors.New("not a hex digit")

	// ErrNotPrintable is returned when a rune outside printable ASCII is
	// typed in byte mode.
	ErrNotPrintable = errors.New("not a printable ASCII character")

	// ErrNoPath is returned by Save when the session has no file name.
	ErrNoPath = errors.New("no file name")
)
