package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/livesync"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

var (
	renderOutput   string
	renderWidth    int
	renderHeight   int
	renderNoLegend bool
)

var renderCmd = &cobra.Command{
	Use:   "render <hostname>",
	Short: "Write a host's history chart to a PNG",
	Long: `Fetch a host's recent history once and draw the detail chart
(CPU, memory and disk usage) into a PNG file.

Examples:
  hwmon render web-1
  hwmon render web-1 -o /tmp/web-1.png --width 1200 --height 400`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := renderOptions{
			Hostname: args[0],
			Output:   renderOutput,
			Width:    renderWidth,
			Height:   renderHeight,
			Legend:   cfg.Chart.Legend && !renderNoLegend,
		}
		return renderHost(contextOrBackground(cmd.Context()), cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: <hostname>.png)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "image width in pixels (default: chart.width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "image height in pixels (default: chart.height)")
	renderCmd.Flags().BoolVar(&renderNoLegend, "no-legend", false, "hide the chart legend")
	rootCmd.AddCommand(renderCmd)
}

type renderOptions struct {
	Hostname string
	Output   string
	Width    int
	Height   int
	Legend   bool
}

func (o renderOptions) withDefaults(cfg *config.Config) renderOptions {
	if o.Output == "" {
		o.Output = o.Hostname + ".png"
	}
	if o.Width <= 0 {
		o.Width = cfg.Chart.Width
	}
	if o.Height <= 0 {
		o.Height = cfg.Chart.Height
	}
	return o
}

// renderHost fetches the host's history and writes the detail chart.
func renderHost(ctx context.Context, cfg *config.Config, opts renderOptions, out io.Writer) error {
	opts = opts.withDefaults(cfg)
	size := chart.Size{Width: float64(opts.Width), Height: float64(opts.Height)}
	if size.PlotWidth() <= 0 || size.PlotHeight() <= 0 {
		return errors.New(errors.ErrRender,
			fmt.Sprintf("%dx%d is too small to draw a chart", opts.Width, opts.Height),
			fmt.Sprintf("Use at least %dx%d.", int(2*chart.Padding)+1, int(2*chart.Padding)+1))
	}

	fetcher, err := livesync.NewHTTPFetcher(cfg.Server.URL, cfg.Sync.FetchTimeout)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(out, "Fetching "+opts.Hostname, isTerminal(out))
	spinner.Start()
	history, err := fetcher.FetchHost(ctx, opts.Hostname, cfg.Sync.HistoryLimit)
	if err != nil {
		spinner.Fail()
		return err
	}
	samples := history.HardwareInfo
	spinner.SetLabel(fmt.Sprintf("Fetched %d samples for %s", len(samples), opts.Hostname))
	spinner.Success()

	if n := cfg.Sync.DetailCapacity; len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	if len(samples) < 2 {
		ui.Warn(out, "%s has %d sample(s); the chart will only show axes", opts.Hostname, len(samples))
	}

	raster, err := chart.NewRaster(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	c := chart.New(raster, size, chart.Options{Legend: opts.Legend})
	livesync.FillDetailModel(c.Model(), samples, livesync.DefaultLabelLayout, time.Local)
	c.Update()

	written, err := writePNG(opts.Output, raster)
	if err != nil {
		return err
	}
	ui.Success(out, "Wrote %s (%d samples, %dx%d, %s)",
		opts.Output, len(samples), opts.Width, opts.Height, telemetry.FormatBytes(written))
	return nil
}

// writePNG encodes r to path and returns the file size.
func writePNG(path string, r *chart.Raster) (uint64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrRender,
			"Couldn't create "+path,
			"Check the directory exists and is writable, or pick another path with --output.")
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, errors.WrapWithCode(err, errors.ErrRender, "Couldn't stat "+path, "")
	}
	if err := f.Close(); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrRender, "Couldn't finish writing "+path, "")
	}
	return uint64(info.Size()), nil
}
