package main

import (
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOut {
				return c.printJSON(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			c.printf("hexstorm %s\n", version)
			c.printf("  commit: %s\n", commit)
			c.printf("  built: %s\n", date)
			return nil
		},
	}
}
