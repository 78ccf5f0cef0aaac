package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cuprace/internal/config"
	"github.com/vovakirdan/cuprace/internal/platform/tui"
	"github.com/vovakirdan/cuprace/internal/storage"
)

var (
	flagLeftName  string
	flagRightName string
	flagStrict    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat game",
	Long: `Start a two-player game in this terminal. Players take turns at the
same keyboard; a hand stays hidden until its owner presses continue.

Controls:
  Enter/Space  - Continue (reveal hand, finish race, end turn)
  1-8          - Pick or unpick a hand card
  a/s/d/f      - Play the picked card on race 1-4
  x            - Discard the picked cards
  c then 1-5   - Claim a cup with wildcards
  n            - New game (press twice during a game)
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Examples:
  cuprace play
  cuprace play --left Ann --right Bob
  cuprace play --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLeftName, "left", "", "Name of the left player")
	playCmd.Flags().StringVar(&flagRightName, "right", "", "Name of the right player")
	playCmd.Flags().BoolVar(&flagStrict, "strict", false, "Stop on rule invariant violations")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfg, src, err := loadConfig(cmd, func(cfg *config.Config) {
		if flags.Changed("left") {
			cfg.Players.Left = flagLeftName
		}
		if flags.Changed("right") {
			cfg.Players.Right = flagRightName
		}
		if flags.Changed("strict") {
			cfg.Game.Strict = flagStrict
		}
	})
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closeLog = log.New(io.Discard), func() {}
	}
	defer closeLog()
	logger.Info("starting", "config", src, "db", cfg.Storage.DBPath)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open result storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("playing without storage", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
		Width:  width,
		Height: height,
	})

	// Close store before returning
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

// newFileLogger opens the configured log file. The terminal belongs to the
// UI, so play mode never logs to stdout or stderr.
func newFileLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path, err := storage.ExpandHome(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "cuprace",
		Level:           cfg.LogLevel(),
	})
	return logger, func() { f.Close() }, nil
}
