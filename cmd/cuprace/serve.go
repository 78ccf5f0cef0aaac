package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuprace/internal/config"
	"github.com/vovakirdan/cuprace/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cup Race SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own table; both players share the connecting
terminal. The left seat takes the SSH user name. Finished games are stored
per-server (all sessions share the same results).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cuprace/host_key

Examples:
  cuprace serve                           # Listen on :23235 with auto-generated key
  cuprace serve --ssh :2222               # Listen on port 2222
  cuprace serve --host-key ./my_host_key  # Use specific host key
  cuprace serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfg, src, err := loadConfig(cmd, func(cfg *config.Config) {
		if flags.Changed("ssh") {
			cfg.SSH.Address = flagSSHAddr
		}
		if flags.Changed("host-key") {
			cfg.SSH.HostKeyPath = flagHostKey
		}
		if flags.Changed("idle-timeout") {
			cfg.SSH.IdleTimeout = flagIdleTimeout
		}
	})
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cuprace-ssh",
		Level:           cfg.LogLevel(),
	})
	logger.Debug("configuration loaded", "source", src)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting Cup Race SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
