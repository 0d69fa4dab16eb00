package cli

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/monitor"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

// debugLogFile receives log output while the TUI owns the terminal.
const debugLogFile = "hwmon-debug.log"

// LiveFlags holds the flags shared by the dashboard and host commands.
type LiveFlags struct {
	Plain    bool
	NoLegend bool
}

// AddLiveFlags registers --plain and --no-legend on a command.
func AddLiveFlags(cmd *cobra.Command, flags *LiveFlags) {
	cmd.Flags().BoolVar(&flags.Plain, "plain", false, "print updates as lines instead of the interactive view")
	cmd.Flags().BoolVar(&flags.NoLegend, "no-legend", false, "hide the chart legend")
}

var (
	dashboardFlags LiveFlags
	hostFlags      LiveFlags
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Live fleet overview",
	Long: `Show every host reporting to the server with fleet averages and a
rolling CPU/memory chart.

Press enter on a host to open its detail view, esc to come back.

Examples:
  hwmon dashboard
  hwmon dash --server http://metrics.internal:8080
  hwmon dashboard --plain | tee fleet.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runLive(cmd.Context(), cfg, monitor.DashboardRoute(), dashboardFlags, cmd.OutOrStdout())
	},
}

var hostCmd = &cobra.Command{
	Use:   "host [hostname]",
	Short: "Live detail view for one host",
	Long: `Follow a single host: CPU, memory, disks, network and a history chart.

Without a hostname, hwmon asks the server for known hosts and lets you pick.

Examples:
  hwmon host web-1
  hwmon host
  hwmon host db-1 --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := contextOrBackground(cmd.Context())
		hostname := ""
		if len(args) == 1 {
			hostname = args[0]
		} else {
			if hostFlags.Plain || !isTerminal(cmd.OutOrStdout()) {
				return errors.New(errors.ErrConfig,
					"A hostname is required without a terminal",
					"Pass one explicitly: hwmon host <hostname>")
			}
			hostname, err = pickHost(ctx, cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}
		return runLive(ctx, cfg, monitor.HostRoute(hostname), hostFlags, cmd.OutOrStdout())
	},
}

func init() {
	AddLiveFlags(dashboardCmd, &dashboardFlags)
	AddLiveFlags(hostCmd, &hostFlags)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(hostCmd)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// runLive starts the interactive view, or the line printer when --plain is
// set or stdout isn't a terminal.
func runLive(ctx context.Context, cfg *config.Config, route monitor.Route, flags LiveFlags, out io.Writer) error {
	factory, err := newSessionFactory(cfg, cfg.Chart.Legend && !flags.NoLegend)
	if err != nil {
		return err
	}
	if flags.Plain || !isTerminal(out) {
		return runPlain(contextOrBackground(ctx), factory, route, out)
	}
	return runTUI(factory, route)
}

func runPlain(ctx context.Context, factory *sessionFactory, route monitor.Route, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return factory.controller(route, newPlainSink(out)).Run(ctx)
}

func runTUI(factory *sessionFactory, route monitor.Route) error {
	restore := redirectLogs()
	defer restore()

	sw := monitor.NewSwitcher(factory.start)
	p := tea.NewProgram(monitor.NewModel(sw, route), tea.WithAltScreen())
	sw.Attach(p)

	_, err := p.Run()
	sw.Stop()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"The live view exited unexpectedly",
			"Try --plain to print updates without the interactive view.")
	}
	return nil
}

// redirectLogs keeps log output off the alternate screen: it goes to
// debugLogFile with --verbose and is discarded otherwise.
func redirectLogs() func() {
	prevOut, prevPrefix := log.Writer(), log.Prefix()
	restore := func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
	}

	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "hwmon")
		if err == nil {
			return func() {
				f.Close()
				restore()
			}
		}
	}
	log.SetOutput(io.Discard)
	return restore
}

// pickHost lists the server's hosts and prompts for one.
func pickHost(ctx context.Context, cfg *config.Config, out io.Writer) (string, error) {
	factory, err := newSessionFactory(cfg, false)
	if err != nil {
		return "", err
	}

	spinner := ui.NewSpinner(out, "Fetching hosts", true)
	spinner.Start()
	choices, err := hostChoices(ctx, factory, cfg)
	if err != nil {
		spinner.Fail()
		return "", err
	}
	spinner.Success()

	return ui.PickHost(ctx, choices)
}

// hostChoices joins the host list with the latest snapshot for status.
func hostChoices(ctx context.Context, factory *sessionFactory, cfg *config.Config) ([]ui.HostChoice, error) {
	hosts, err := factory.fetcher.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := factory.fetcher.FetchLatest(ctx)
	if err != nil {
		factory.log.Debug("latest snapshot: %v", err)
		latest = nil
	}

	now := timeNow()
	choices := make([]ui.HostChoice, len(hosts))
	for i, h := range hosts {
		choices[i] = ui.HostChoice{Hostname: h}
		if s, ok := latest[h]; ok {
			choices[i].Known = true
			choices[i].CPU = s.CPUUsage()
			choices[i].Online = telemetry.Classify(s.Timestamp, now, cfg.Sync.StaleAfter)
		}
	}
	return choices, nil
}
