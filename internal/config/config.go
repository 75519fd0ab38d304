package config

import (
	"log/slog"
	"time"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/engine/block"
	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/script"
)

// Config holds every hexstorm setting.
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine" json:"engine"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor" json:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
	Script  ScriptConfig  `toml:"script" yaml:"script" json:"script"`
}

// EngineConfig contains block store and undo settings.
type EngineConfig struct {
	MinBlockSize   ByteSize `toml:"min_block_size" yaml:"min_block_size" json:"min_block_size"`
	MaxBlockSize   ByteSize `toml:"max_block_size" yaml:"max_block_size" json:"max_block_size"`
	MaxUndoEntries int      `toml:"max_undo_entries" yaml:"max_undo_entries" json:"max_undo_entries"`
}

// EditorConfig contains the initial state of an editing session.
type EditorConfig struct {
	InsertMode bool `toml:"insert_mode" yaml:"insert_mode" json:"insert_mode"`
	NibbleMode bool `toml:"nibble_mode" yaml:"nibble_mode" json:"nibble_mode"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
	File   string `toml:"file" yaml:"file" json:"file"`
}

// ScriptConfig limits Lua scripts.
type ScriptConfig struct {
	CallLimit int      `toml:"call_limit" yaml:"call_limit" json:"call_limit"`
	Timeout   Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MinBlockSize: block.DefaultMinBlockSize,
			MaxBlockSize: block.DefaultMaxBlockSize,
		},
		Editor: EditorConfig{
			NibbleMode: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Script: ScriptConfig{
			CallLimit: 1_000_000,
			Timeout:   Duration(30 * time.Second),
		},
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if c.Engine.MinBlockSize <= 0 {
		verr.add("engine.min_block_size", "must be positive", c.Engine.MinBlockSize)
	}
	if c.Engine.MaxBlockSize < 2*c.Engine.MinBlockSize {
		verr.add("engine.max_block_size", "must be at least twice min_block_size", c.Engine.MaxBlockSize)
	}
	if c.Engine.MaxUndoEntries < 0 {
		verr.add("engine.max_undo_entries", "must not be negative", c.Engine.MaxUndoEntries)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		verr.add("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		verr.add("logging.format", "must be text or json", c.Logging.Format)
	}
	if c.Script.CallLimit < 0 {
		verr.add("script.call_limit", "must not be negative", c.Script.CallLimit)
	}
	if c.Script.Timeout < 0 {
		verr.add("script.timeout", "must not be negative", c.Script.Timeout)
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// EngineOptions converts the engine settings to engine options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMinBlockSize(int(c.Engine.MinBlockSize)),
		engine.WithMaxBlockSize(int(c.Engine.MaxBlockSize)),
		engine.WithMaxUndoEntries(c.Engine.MaxUndoEntries),
	}
}

// ScriptOptions converts the script limits to runner options.
func (c *Config) ScriptOptions() []script.Option {
	return []script.Option{
		script.WithCallLimit(c.Script.CallLimit),
		script.WithTimeout(c.Script.Timeout.Std()),
	}
}

// LoggingOptions converts the logging settings for logging.Open.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   c.Logging.File,
	}
}

// LogValue implements slog.LogValuer.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("min_block_size", c.Engine.MinBlockSize.String()),
		slog.String("max_block_size", c.Engine.MaxBlockSize.String()),
		slog.Int("max_undo_entries", c.Engine.MaxUndoEntries),
		slog.String("log_level", c.Logging.Level),
		slog.Int("call_limit", c.Script.CallLimit),
		slog.Duration("script_timeout", c.Script.Timeout.Std()),
	)
}
