package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeFile creates a file in a fresh temp dir and returns its path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// smallBlocks is a configuration that makes block splitting visible on
// small files.
const smallBlocks = `
[engine]
min_block_size = 16
max_block_size = 64
`

func TestInfo(t *testing.T) {
	cfgPath := writeFile(t, "hexstorm.toml", []byte(smallBlocks))
	path := writeFile(t, "data.bin", make([]byte, 100))

	out, err := execute(t, "info", path, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Size: 100 bytes")
	assert.Contains(t, out, "Blocks: 7")

	out, err = execute(t, "info", path, "--config", cfgPath, "--json", "-v")
	require.NoError(t, err)

	var res infoResult
	require.NoError(t, json.Unmarshal([]byte(out[strings.Index(out, "{"):]), &res))
	assert.Equal(t, 100, res.Size)
	assert.Equal(t, 7, res.Blocks)
	assert.Equal(t, 16, res.MinBlockSize)
	assert.Equal(t, 64, res.MaxBlockSize)
	assert.Equal(t, []int{16, 16, 16, 16, 16, 16, 4}, res.BlockSizes)
}

func TestInfoMissingFile(t *testing.T) {
	_, err := execute(t, "info", filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("..hello..hello"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first", []string{"68656c6c6f"}, "0x00000002 (2)\n"},
		{"from", []string{"68 65 6c 6c 6f", "--from", "3"}, "0x00000009 (9)\n"},
		{"wraps", []string{"68656c6c6f", "--from", "12"}, "0x00000002 (2)\n"},
		{"text", []string{"hello", "--text", "--from", "0x3"}, "0x00000009 (9)\n"},
		{"all", []string{"hello", "--text", "--all"}, "0x00000002 (2)\n0x00000009 (9)\n"},
		{"none", []string{"ffff"}, "No match for ffff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"find", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFindJSON(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("aaaa"))

	out, err := execute(t, "find", path, "6161", "--all", "--json")
	require.NoError(t, err)

	var res struct {
		Pattern string `json:"pattern"`
		Matches []int  `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "6161", res.Pattern)
	assert.Equal(t, []int{0, 1, 2}, res.Matches)
}

func TestFindBadPattern(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abc"))

	_, err := execute(t, "find", path, "abc")
	assert.Error(t, err)

	_, err = execute(t, "find", path, "", "--text")
	assert.EqualError(t, err, "empty pattern")
}

func TestDump(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("Hello, world\x00\x01"))

	out, err := execute(t, "dump", path, "--width", "8")
	require.NoError(t, err)
	want := "" +
		"00000000  48 65 6c 6c 6f 2c 20 77  Hello, w\n" +
		"00000008  6f 72 6c 64 00 01        orld..\n"
	assert.Equal(t, want, out)

	out, err = execute(t, "dump", path, "--offset", "7", "--length", "5", "--json")
	require.NoError(t, err)

	var res struct {
		Offset int    `json:"offset"`
		Length int    `json:"length"`
		Hex    string `json:"hex"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 7, res.Offset)
	assert.Equal(t, 5, res.Length)
	assert.Equal(t, "776f726c64", res.Hex)
}

func TestDumpPastEnd(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abc"))

	out, err := execute(t, "dump", path, "--offset", "10")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPatch(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abcdef"))

	out, err := execute(t, "patch", path, "0x1", "4243")
	require.NoError(t, err)
	assert.Equal(t, "Patched [1:3), new size 6 bytes\n", out)
	assert.Equal(t, []byte("aBCdef"), readFile(t, path))
}

func TestPatchPastEnd(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abc"))

	_, err := execute(t, "patch", path, "2", "ffff")
	assert.Error(t, err)
	assert.Equal(t, []byte("abc"), readFile(t, path))
}

func TestInsertToOutput(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abc"))
	output := filepath.Join(t.TempDir(), "out.bin")

	out, err := execute(t, "insert", path, "3", "64 65", "--output", output, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"size": 5`)

	assert.Equal(t, []byte("abcde"), readFile(t, output))
	assert.Equal(t, []byte("abc"), readFile(t, path))
}

func TestDelete(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abcdef"))

	_, err := execute(t, "delete", path, "1", "3")
	require.NoError(t, err)
	assert.Equal(t, []byte("adef"), readFile(t, path))

	// The end is clamped to the file size.
	_, err = execute(t, "delete", path, "2", "100")
	require.NoError(t, err)
	assert.Equal(t, []byte("ad"), readFile(t, path))

	_, err = execute(t, "delete", path, "-1", "2")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abcdef"))
	script := writeFile(t, "patch.lua", []byte(`
		buf.overwrite(0, "XY")
		print(buf.read(0, 2), buf.len())
	`))

	out, err := execute(t, "run", path, script, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "XY\t6\n", out)
	assert.Equal(t, []byte("abcdef"), readFile(t, path))

	_, err = execute(t, "run", path, script)
	require.NoError(t, err)
	assert.Equal(t, []byte("XYcdef"), readFile(t, path))
}

func TestRunScriptError(t *testing.T) {
	path := writeFile(t, "data.bin", []byte("abc"))
	script := writeFile(t, "bad.lua", []byte(`buf.overwrite(0, "x") error("stop")`))

	_, err := execute(t, "run", path, script)
	assert.ErrorContains(t, err, "stop")
	assert.Equal(t, []byte("abc"), readFile(t, path))
}

func TestRunCallLimitFromConfig(t *testing.T) {
	cfgPath := writeFile(t, "hexstorm.yaml", []byte("script:\n  call_limit: 5\n"))
	path := writeFile(t, "data.bin", []byte("abc"))
	script := writeFile(t, "loop.lua", []byte(`for i = 1, 10 do buf.len() end`))

	_, err := execute(t, "run", path, script, "--config", cfgPath)
	assert.ErrorContains(t, err, "call limit")
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "min_block_size")

	out, err = execute(t, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "engine:")

	out, err = execute(t, "config", "show", "--json")
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Contains(t, raw, "engine")
	assert.Contains(t, raw, "script")

	_, err = execute(t, "config", "show", "--format", "ini")
	assert.Error(t, err)
}

func TestConfigFromFile(t *testing.T) {
	cfgPath := writeFile(t, "hexstorm.toml", []byte(smallBlocks))

	out, err := execute(t, "config", "show", "--config", cfgPath, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"min_block_size": "16"`)
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := writeFile(t, "hexstorm.toml", []byte("[engine]\nmin_block_size = 0\n"))
	path := writeFile(t, "data.bin", []byte("abc"))

	_, err := execute(t, "info", path, "--config", cfgPath)
	assert.ErrorContains(t, err, "engine.min_block_size")
}

func TestConfigEnv(t *testing.T) {
	out, err := execute(t, "config", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "HEXSTORM_MIN_BLOCK_SIZE\n")
}

func TestConfigWatchNeedsPath(t *testing.T) {
	_, err := execute(t, "config", "watch")
	assert.EqualError(t, err, "watch requires --config")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hexstorm dev\n"))
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"0x10", 16, false},
		{"0b101", 5, false},
		{"-1", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOffset(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
