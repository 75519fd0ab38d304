// Package config provides the configuration system for hexstorm.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← HEXSTORM_MAX_BLOCK_SIZE=8MiB
//	├─────────────────────────────┤
//	│  2. Config File             │  ← hexstorm.toml / .yaml / .json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Resolve("hexstorm.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e := engine.New(cfg.EngineOptions()...)
//
// The file format is chosen by extension. Unknown settings are rejected so
// that typos do not pass silently. Sizes accept unit suffixes:
//
//	[engine]
//	min_block_size = "1MiB"
//	max_block_size = "4MiB"
//	max_undo_entries = 0  # unbounded
//
// # Live Reload
//
// Watch reloads the file when it changes:
//
//	go config.Watch(ctx, path, func(cfg *config.Config, err error) {
//	    // apply cfg
//	})
package config
