package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/collector"
	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

var (
	agentIntervalFlag string
	agentHostnameFlag string
	agentOnceFlag     bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Report this machine's metrics to the server",
	Long: `Collect CPU, memory, disk, network and OS information from this
machine and POST it to the server on an interval.

Examples:
  hwmon agent
  hwmon agent --interval 10s
  hwmon agent --once --server http://metrics.internal:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runAgent(ctx, cfg, collector.SystemSource{CPUWindow: time.Second}, cmd.OutOrStdout())
	},
}

func init() {
	agentCmd.Flags().StringVar(&agentIntervalFlag, "interval", "", "report interval, e.g. 10s (default: agent.interval)")
	agentCmd.Flags().StringVar(&agentHostnameFlag, "hostname", "", "report under this hostname instead of the system's")
	agentCmd.Flags().BoolVar(&agentOnceFlag, "once", false, "send a single sample and exit")
	rootCmd.AddCommand(agentCmd)
}

func runAgent(ctx context.Context, cfg *config.Config, source collector.Source, out io.Writer) error {
	interval, err := ParseDuration("interval", agentIntervalFlag, cfg.Agent.Interval)
	if err != nil {
		return err
	}

	agent := collector.NewAgent(collector.New(source, agentHostnameFlag, nil), collector.AgentOptions{
		ServerURL: cfg.Server.URL,
		Interval:  interval,
		Timeout:   cfg.Sync.FetchTimeout,
	})

	if agentOnceFlag {
		if err := agent.PushOnce(ctx); err != nil {
			return err
		}
		ui.Success(out, "Sample sent to %s", cfg.Server.URL)
		return nil
	}

	ui.Success(out, "Reporting to %s every %s", cfg.Server.URL, interval)
	return agent.Run(ctx)
}
