package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/devserver"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo telemetry server",
	Long: `Run a small in-memory telemetry server that agents report to and
dashboards follow. Nothing is persisted; restart it and the history is gone.

Examples:
  hwmon serve
  hwmon serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, serveAddrFlag, cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (default: serve.addr)")
	rootCmd.AddCommand(serveCmd)
}

func serverOptions(cfg *config.Config, addr string) devserver.Options {
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	var access io.Writer = io.Discard
	if logger.DebugEnabled() {
		access = os.Stderr
	}
	return devserver.Options{
		Addr:       addr,
		MaxHosts:   cfg.Serve.MaxHosts,
		MaxRecords: cfg.Serve.MaxRecords,
		RateLimit:  cfg.Serve.RateLimit,
		RateBurst:  cfg.Serve.RateBurst,
		AccessLog:  access,
	}
}

func runServe(ctx context.Context, cfg *config.Config, addr string, out io.Writer) error {
	if !logger.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}
	opts := serverOptions(cfg, addr)

	ui.PrintHeader(out, ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "demo telemetry server",
		Detail:  "listening on " + opts.Addr,
	})
	return devserver.New(opts).Run(ctx)
}
