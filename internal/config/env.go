package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "HEXSTORM_"

// envSetting binds one environment variable suffix to a setting.
type envSetting struct {
	name string
	path string
	set  func(c *Config, v string) error
}

var envSettings = []envSetting{
	{"MIN_BLOCK_SIZE", "engine.min_block_size", func(c *Config, v string) (err error) {
		c.Engine.MinBlockSize, err = ParseByteSize(v)
		return err
	}},
	{"MAX_BLOCK_SIZE", "engine.max_block_size", func(c *Config, v string) (err error) {
		c.Engine.MaxBlockSize, err = ParseByteSize(v)
		return err
	}},
	{"MAX_UNDO_ENTRIES", "engine.max_undo_entries", func(c *Config, v string) (err error) {
		c.Engine.MaxUndoEntries, err = strconv.Atoi(v)
		return err
	}},
	{"INSERT_MODE", "editor.insert_mode", func(c *Config, v string) (err error) {
		c.Editor.InsertMode, err = strconv.ParseBool(v)
		return err
	}},
	{"NIBBLE_MODE", "editor.nibble_mode", func(c *Config, v string) (err error) {
		c.Editor.NibbleMode, err = strconv.ParseBool(v)
		return err
	}},
	{"LOG_LEVEL", "logging.level", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"LOG_FORMAT", "logging.format", func(c *Config, v string) error {
		c.Logging.Format = v
		return nil
	}},
	{"LOG_FILE", "logging.file", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"SCRIPT_CALL_LIMIT", "script.call_limit", func(c *Config, v string) (err error) {
		c.Script.CallLimit, err = strconv.Atoi(v)
		return err
	}},
	{"SCRIPT_TIMEOUT", "script.timeout", func(c *Config, v string) (err error) {
		c.Script.Timeout, err = ParseDuration(v)
		return err
	}},
}

// ApplyEnv overrides settings from environment variables named prefix
// followed by the setting, e.g. HEXSTORM_MAX_BLOCK_SIZE=8MiB. All
// malformed values are reported together.
func (c *Config) ApplyEnv(prefix string) error {
	return c.applyLookup(prefix, os.LookupEnv)
}

func (c *Config) applyLookup(prefix string, lookup func(string) (string, bool)) error {
	var errs []error
	for _, s := range envSettings {
		name := prefix + s.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", name, s.path, err))
		}
	}
	return errors.Join(errs...)
}

// EnvNames lists every recognized environment variable for prefix.
func EnvNames(prefix string) []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = prefix + s.name
	}
	return names
}
