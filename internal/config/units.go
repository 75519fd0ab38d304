package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ByteSize is a size in bytes. It decodes from plain integers or from
// strings with a binary unit suffix such as "64KiB", "4M" or "1 GiB".
type ByteSize int

var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"gib", 1 << 30}, {"mib", 1 << 20}, {"kib", 1 << 10},
	{"gb", 1 << 30}, {"mb", 1 << 20}, {"kb", 1 << 10},
	{"g", 1 << 30}, {"m", 1 << 20}, {"k", 1 << 10},
	{"b", 1},
}

// ParseByteSize parses a size string.
func ParseByteSize(s string) (ByteSize, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	text = strings.ReplaceAll(text, "_", "")

	factor := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(text, u.suffix) {
			factor = u.factor
			text = strings.TrimSpace(strings.TrimSuffix(text, u.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return ByteSize(n * factor), nil
}

func (b ByteSize) String() string {
	switch {
	case b > 0 && b%(1<<30) == 0:
		return strconv.Itoa(int(b>>30)) + "GiB"
	case b > 0 && b%(1<<20) == 0:
		return strconv.Itoa(int(b>>20)) + "MiB"
	case b > 0 && b%(1<<10) == 0:
		return strconv.Itoa(int(b>>10)) + "KiB"
	default:
		return strconv.Itoa(int(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteSize) UnmarshalText(text []byte) error {
	v, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(n *yaml.Node) error {
	return b.UnmarshalText([]byte(n.Value))
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (b *ByteSize) UnmarshalJSON(data []byte) error {
	return b.UnmarshalText(jsonScalar(data))
}

// Duration is a time.Duration that decodes from strings like "250ms".
// Bare integers are read as seconds.
type Duration time.Duration

// ParseDuration parses a duration string.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Duration(time.Duration(n) * time.Second), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return Duration(d), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (d *Duration) UnmarshalJSON(data []byte) error {
	return d.UnmarshalText(jsonScalar(data))
}

// jsonScalar strips the quotes from a JSON string literal and leaves any
// other literal untouched.
func jsonScalar(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return []byte(s)
		}
	}
	return data
}
