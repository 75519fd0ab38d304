package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/editor"
	"github.com/dshills/hexstorm/internal/logging"
)

// cli holds the global flags and the state shared by all commands.
type cli struct {
	configPath string
	verbose    bool
	jsonOut    bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error

	out io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "hexstorm",
		Short: "Inspect and edit binary files",
		Long: `hexstorm reads, searches and patches binary files of any size.
Files are held in blocks so edits in the middle of large files stay cheap,
and every edit goes through an undo log.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closeLog != nil {
				return c.closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Output in JSON format")

	root.AddCommand(
		newVersionCmd(c),
		newInfoCmd(c),
		newFindCmd(c),
		newDumpCmd(c),
		newPatchCmd(c),
		newInsertCmd(c),
		newDeleteCmd(c),
		newRunCmd(c),
		newConfigCmd(c),
	)
	return root
}

// setup resolves the configuration and opens the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	c.out = cmd.OutOrStdout()

	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	c.cfg = cfg

	logger, closeLog, err := logging.Open(cfg.LoggingOptions(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.logger = logger
	c.closeLog = closeLog
	c.logger.Debug("configuration loaded", "path", c.configPath, "config", cfg)
	return nil
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) printVerbose(format string, args ...any) {
	if c.verbose {
		fmt.Fprintf(c.out, format, args...)
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openSession opens path in an editing session configured from the
// resolved configuration.
func (c *cli) openSession(path string) (*editor.Session, error) {
	s := editor.New(
		editor.WithFileSystem(editor.OSFS{}),
		editor.WithLogger(c.logger),
		editor.WithEngineOptions(c.cfg.EngineOptions()...),
		editor.WithInsertMode(c.cfg.Editor.InsertMode),
		editor.WithNibbleMode(c.cfg.Editor.NibbleMode),
	)
	if err := s.Open(path); err != nil {
		return nil, err
	}
	c.printVerbose("%s\n", s.Status())
	return s, nil
}

// save writes the session to output, or back to its own file when output
// is empty.
func (c *cli) save(s *editor.Session, output string) error {
	if err := s.Save(output); err != nil {
		return err
	}
	c.printVerbose("%s\n", s.Status())
	return nil
}

// parseOffset accepts decimal, 0x hex, 0o octal and 0b binary offsets.
func parseOffset(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative offset %q", s)
	}
	return int(n), nil
}
