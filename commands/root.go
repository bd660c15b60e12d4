package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-claude-timeline/internal/config"
	"github.com/penwyp/go-claude-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-claude-timeline/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Logging related
	debug bool

	// State and configuration
	stateDir   string
	configFile string

	// Output related
	outputFormat string
	jsonOutput   bool

	rootCmd = &cobra.Command{
		Use:   "go-claude-timeline",
		Short: "Reconstruct untracked Claude Code activity as workflow archives",
		Long: `go-claude-timeline reads the hook log, transcripts and git history of a project
and records activity that happened outside any tracked workflow as synthetic
"cowboy" workflow archives.

Examples:
  go-claude-timeline cowboy                      # Detect and archive untracked activity
  go-claude-timeline cowboy --dry-run            # Show what would be archived
  go-claude-timeline archives --output json      # List archives as JSON
  go-claude-timeline --state-dir ~/work/.timeline archives`,
		SilenceUsage: true,
	}
)

const defaultStateDir = ".timeline"

func init() {
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultStateDir,
		"State directory holding hooks.jsonl, config.toml and the archive")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default <state-dir>/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatter.FormatTable,
		"Output format (table, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Shorthand for --output json")
}

func Execute() error {
	return rootCmd.Execute()
}

// environment is the per-invocation setup shared by subcommands
type environment struct {
	cfg    config.Config
	logger util.LoggerInterface
	close  func()
}

// setup loads configuration and installs the logger. The caller must call
// env.close when done.
func setup() (*environment, error) {
	dir := expandPath(stateDir)

	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(dir, expandPath(configFile))
	} else {
		cfg, err = config.Load(dir)
	}
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Log.Level
	if debug {
		logLevel = "debug"
	}

	logFile := cfg.LogFile()
	if logFile == "" && !debug {
		return &environment{cfg: cfg, logger: util.NewNopLogger(), close: func() {}}, nil
	}
	logger, err := util.NewLogger(logLevel, logFile, debug)
	if err != nil {
		return nil, err
	}
	util.SetGlobalLogger(logger)

	return &environment{
		cfg:    cfg,
		logger: logger,
		close: func() {
			util.SetGlobalLogger(nil)
			logger.Close()
		},
	}, nil
}

// newFormatter picks the output formatter; colors only reach a terminal
func newFormatter(w io.Writer) (formatter.Formatter, error) {
	format := outputFormat
	if jsonOutput {
		format = formatter.FormatJSON
	}
	return formatter.New(format, w, util.Palette{Enabled: isTerminal(w)})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
