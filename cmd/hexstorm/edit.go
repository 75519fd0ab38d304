package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/editor"
	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/hexfmt"
)

// editFunc applies one edit to an open session.
type editFunc func(s *editor.Session) (engine.Range, error)

// runEdit opens path, applies fn and saves the result to output, or in
// place when output is empty.
func (c *cli) runEdit(path, output, verb string, fn editFunc) error {
	s, err := c.openSession(path)
	if err != nil {
		return err
	}

	r, err := fn(s)
	if err != nil {
		return err
	}
	if err := c.save(s, output); err != nil {
		return err
	}

	if c.jsonOut {
		return c.printJSON(map[string]any{
			"file":  s.Path(),
			"edit":  verb,
			"start": r.Start,
			"end":   r.End,
			"size":  s.Engine().Len(),
		})
	}
	c.printf("%s %s, new size %d bytes\n", verb, r, s.Engine().Len())
	return nil
}

func newPatchCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "patch <file> <offset> <hex>",
		Short: "Overwrite bytes at an offset",
		Long: `The patch command overwrites bytes starting at offset. The patch must
fit inside the file.

Example:
  hexstorm patch firmware.bin 0x10 "90 90 90"
  hexstorm patch firmware.bin 16 9090 --output patched.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseOffset(args[1])
			if err != nil {
				return err
			}
			data, err := hexfmt.Decode(args[2])
			if err != nil {
				return err
			}
			return c.runEdit(args[0], output, "Patched", func(s *editor.Session) (engine.Range, error) {
				return s.Engine().Overwrite(offset, data)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of in place")
	return cmd
}

func newInsertCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "insert <file> <offset> <hex>",
		Short: "Insert bytes at an offset",
		Long: `The insert command inserts bytes before offset. An offset equal to the
file size appends.

Example:
  hexstorm insert data.bin 0 cafebabe
  hexstorm insert data.bin 0x100 "00 00" -o grown.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseOffset(args[1])
			if err != nil {
				return err
			}
			data, err := hexfmt.Decode(args[2])
			if err != nil {
				return err
			}
			return c.runEdit(args[0], output, "Inserted", func(s *editor.Session) (engine.Range, error) {
				return s.Engine().Insert(offset, data)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of in place")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "delete <file> <start> <end>",
		Short: "Delete the bytes in [start, end)",
		Long: `The delete command removes the bytes from start up to but not including
end. An end past the file size deletes to the end of the file.

Example:
  hexstorm delete data.bin 0x10 0x20`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseOffset(args[1])
			if err != nil {
				return err
			}
			end, err := parseOffset(args[2])
			if err != nil {
				return err
			}
			return c.runEdit(args[0], output, "Deleted", func(s *editor.Session) (engine.Range, error) {
				return s.Engine().Delete(start, end)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of in place")
	return cmd
}
