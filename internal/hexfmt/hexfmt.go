// Package hexfmt parses and formats hex text.
package hexfmt

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// DefaultWidth is the number of bytes per dump line.
const DefaultWidth = 16

// ErrOddLength is returned when hex text ends in half a byte.
var ErrOddLength = errors.New("odd number of hex digits")

// Decode parses hex digits into bytes. Whitespace between digits is
// ignored and an optional "0x" prefix is accepted, so "0xDEAD", "de ad"
// and "de\tad" all decode to the same two bytes.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "0X"); ok {
		s = rest
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrOddLength, s)
	}

	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return data, nil
}

// Encode formats data as lowercase hex digits without separators.
func Encode(data []byte) string {
	return hex.EncodeToString(data)
}

// Dump writes data as lines of width bytes. Each line shows the offset of
// its first byte, counting from base, the bytes in hex and the printable
// ASCII characters:
//
//	00000010  48 65 6c 6c 6f 00 01 02  Hello...
func Dump(w io.Writer, data []byte, base, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += width {
		line := data[off:min(off+width, len(data))]

		fmt.Fprintf(bw, "%08x ", base+off)
		for i := range width {
			if i < len(line) {
				fmt.Fprintf(bw, " %02x", line[i])
			} else {
				bw.WriteString("   ")
			}
		}
		bw.WriteString("  ")
		for _, b := range line {
			bw.WriteByte(Printable(b))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Printable returns b when it is printable ASCII and '.' otherwise.
func Printable(b byte) byte {
	if b >= 0x20 && b <= 0x7e {
		return b
	}
	return '.'
}
