package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

// Global flags, shared by every subcommand.
var (
	configFlag  string
	serverFlag  string
	verboseFlag bool
	noColorFlag bool
)

// timeNow is swapped in tests.
var timeNow = time.Now

var rootCmd = &cobra.Command{
	Use:   "hwmon",
	Short: "Live host telemetry in your terminal",
	Long: `hwmon follows a telemetry server and renders a live fleet dashboard
and per-host detail views in the terminal.

Data arrives over a websocket push channel and is periodically refreshed
over HTTP, so views recover on their own when the connection drops.

Get started:
  hwmon serve            # run the bundled demo server
  hwmon agent            # report this machine to it
  hwmon dashboard        # watch the fleet`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: ./.hwmon.yaml, then ~/.config/hwmon/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "telemetry server URL (overrides server.url)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func applyGlobalFlags(out io.Writer) {
	logger.SetDebug(verboseFlag)
	if noColorFlag || os.Getenv("NO_COLOR") != "" || !isTerminal(out) {
		ui.DisableColors()
	}
}

// loadConfig resolves, overrides and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.Resolve(configFlag)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Default().Debug("using config %s", path)
	}
	applyServerOverride(cfg, serverFlag)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyServerOverride(cfg *config.Config, server string) {
	if server = strings.TrimSpace(server); server != "" {
		cfg.Server.URL = strings.TrimRight(server, "/")
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatError renders err for stderr. Structured errors carry their own
// "✗" prefix and suggestion.
func formatError(err error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, "✗") {
		msg = "✗ " + msg
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}
