package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/config"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(
		newConfigShowCmd(c),
		newConfigEnvCmd(c),
		newConfigWatchCmd(c),
	)
	return cmd
}

func newConfigShowCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults, file and environment",
		Long: `The show command prints the effective configuration. The output can be
saved and used as a starting point for a configuration file.

Example:
  hexstorm config show
  hexstorm config show --format yaml --config hexstorm.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Format(format)
			if c.jsonOut {
				f = config.FormatJSON
			}
			return config.Encode(c.out, c.cfg, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), "Output format (toml, yaml, json)")
	return cmd
}

func newConfigEnvCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables that override settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.EnvNames(config.EnvPrefix)
			if c.jsonOut {
				return c.printJSON(names)
			}
			for _, name := range names {
				c.printf("%s\n", name)
			}
			return nil
		},
	}
}

func newConfigWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the configuration every time the file changes",
		Long: `The watch command reloads the file given with --config whenever it is
written and prints the result, or the error when the new content is
invalid. It runs until interrupted.

Example:
  hexstorm config watch --config hexstorm.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath == "" {
				return errors.New("watch requires --config")
			}
			format, err := config.FormatFromPath(c.configPath)
			if err != nil {
				return err
			}

			c.printf("Watching %s\n", c.configPath)
			return config.Watch(cmd.Context(), c.configPath, func(cfg *config.Config, err error) {
				if err != nil {
					c.logger.Warn("config reload failed", "path", c.configPath, "error", err)
					c.printf("Reload failed: %v\n", err)
					return
				}
				c.logger.Info("config reloaded", "path", c.configPath, "config", cfg)
				c.printf("Reloaded %s\n", c.configPath)
				if err := config.Encode(c.out, cfg, format); err != nil {
					c.logger.Error("encode config", "error", err)
				}
			})
		},
	}
}
