package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/script"
)

type runOptions struct {
	dryRun bool
	output string
}

func newRunCmd(c *cli) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <file> <script.lua>",
		Short: "Run a Lua script against a file",
		Long: `The run command loads a file and runs a Lua script with the buf and hex
modules bound to it. The result is saved unless --dry-run is given.

Example:
  hexstorm run firmware.bin patch.lua
  hexstorm run firmware.bin scan.lua --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(args[0])
			if err != nil {
				return err
			}

			scriptOpts := append(c.cfg.ScriptOptions(),
				script.WithLogger(c.logger),
				script.WithOutput(c.out),
			)
			runner := script.NewRunner(s.Engine(), scriptOpts...)
			defer runner.Close()

			if err := runner.RunFile(cmd.Context(), args[1]); err != nil {
				return err
			}

			edits := s.Engine().UndoCount()
			c.printVerbose("%d edits, %d calls\n", edits, runner.Calls())
			if opts.dryRun || edits == 0 && opts.output == "" {
				return nil
			}
			return c.save(s, opts.output)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run the script without saving")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result here instead of in place")
	return cmd
}
