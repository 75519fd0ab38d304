package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/hexfmt"
)

type findOptions struct {
	from int
	all  bool
	text bool
}

func newFindCmd(c *cli) *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find <file> <pattern>",
		Short: "Search a file for a byte pattern",
		Long: `The find command searches for a byte pattern given as hex digits, or
as literal text with --text. Without --all it reports the first match at
or after --from, wrapping around to the start of the file.

Example:
  hexstorm find firmware.bin "de ad be ef"
  hexstorm find firmware.bin 7f454c46 --all
  hexstorm find firmware.bin "HTTP/1.1" --text --from 0x1000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFind(args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "Offset to start searching at")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Report every match instead of the first")
	cmd.Flags().BoolVar(&opts.text, "text", false, "Treat the pattern as literal text")
	return cmd
}

func parsePattern(pattern string, text bool) ([]byte, error) {
	if text {
		return []byte(pattern), nil
	}
	return hexfmt.Decode(pattern)
}

func (c *cli) runFind(path, pattern string, opts findOptions) error {
	needle, err := parsePattern(pattern, opts.text)
	if err != nil {
		return err
	}
	if len(needle) == 0 {
		return errors.New("empty pattern")
	}

	s, err := c.openSession(path)
	if err != nil {
		return err
	}

	matches := []int{}
	if opts.all {
		eng := s.Engine()
		for pos, ok := eng.Find(needle, opts.from); ok; pos, ok = eng.Find(needle, pos+1) {
			matches = append(matches, pos)
		}
	} else {
		s.Goto(opts.from)
		if s.Find(needle) {
			matches = append(matches, s.Position())
		}
	}

	if c.jsonOut {
		return c.printJSON(map[string]any{
			"file":    path,
			"pattern": hexfmt.Encode(needle),
			"matches": matches,
		})
	}

	if len(matches) == 0 {
		c.printf("No match for %s\n", hexfmt.Encode(needle))
		return nil
	}
	for _, pos := range matches {
		c.printf("0x%08x (%d)\n", pos, pos)
	}
	return nil
}
