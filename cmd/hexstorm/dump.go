package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/hexfmt"
)

type dumpOptions struct {
	offset int
	length int
	width  int
}

func newDumpCmd(c *cli) *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a hex dump of part of a file",
		Long: `The dump command prints offset, hex and ASCII columns for a region of
the file. A length of 0 dumps to the end of the file.

Example:
  hexstorm dump firmware.bin
  hexstorm dump firmware.bin --offset 0x200 --length 64 --width 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.offset, "offset", 0, "First byte to dump")
	cmd.Flags().IntVar(&opts.length, "length", 256, "Number of bytes to dump (0 = to end)")
	cmd.Flags().IntVar(&opts.width, "width", hexfmt.DefaultWidth, "Bytes per line")
	return cmd
}

func (c *cli) runDump(path string, opts dumpOptions) error {
	s, err := c.openSession(path)
	if err != nil {
		return err
	}
	eng := s.Engine()

	start := min(max(opts.offset, 0), eng.Len())
	end := eng.Len()
	if opts.length > 0 {
		end = min(start+opts.length, end)
	}

	data, err := eng.Read(start, end)
	if err != nil {
		return err
	}

	if c.jsonOut {
		return c.printJSON(map[string]any{
			"file":   path,
			"offset": start,
			"length": len(data),
			"hex":    hexfmt.Encode(data),
		})
	}
	return hexfmt.Dump(c.out, data, start, opts.width)
}
