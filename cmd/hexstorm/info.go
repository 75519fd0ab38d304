package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/config"
)

func newInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Report the size and block layout of a file",
		Long: `The info command loads a file into the block store and reports its
size and how it was split into blocks.

Example:
  hexstorm info firmware.bin
  hexstorm info firmware.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(args[0])
		},
	}
}

type infoResult struct {
	File         string `json:"file"`
	Size         int    `json:"size"`
	Blocks       int    `json:"blocks"`
	MinBlockSize int    `json:"min_block_size"`
	MaxBlockSize int    `json:"max_block_size"`
	BlockSizes   []int  `json:"block_sizes,omitempty"`
}

func (c *cli) runInfo(path string) error {
	s, err := c.openSession(path)
	if err != nil {
		return err
	}
	eng := s.Engine()

	lens := eng.BlockLens()
	res := infoResult{
		File:         path,
		Size:         eng.Len(),
		Blocks:       len(lens),
		MinBlockSize: eng.MinBlockSize(),
		MaxBlockSize: eng.MaxBlockSize(),
	}
	if c.verbose {
		res.BlockSizes = lens
	}

	if c.jsonOut {
		return c.printJSON(res)
	}

	c.printf("File: %s\n", res.File)
	c.printf("  Size: %d bytes (%s)\n", res.Size, config.ByteSize(res.Size))
	c.printf("  Blocks: %d\n", res.Blocks)
	c.printf("  Block size: %s to %s\n",
		config.ByteSize(res.MinBlockSize), config.ByteSize(res.MaxBlockSize))
	for i, n := range res.BlockSizes {
		c.printf("    [%d] %d\n", i, n)
	}
	return nil
}
