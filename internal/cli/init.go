package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .hwmon.yaml configuration",
	Long: `Write a commented configuration file with the default settings.

The file goes to ./.hwmon.yaml unless --config names another path.

Examples:
  hwmon init
  hwmon init --server http://metrics.internal:8080
  hwmon init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(configFlag, serverFlag, initForce, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func initConfig(path, server string, force bool, out io.Writer) error {
	if path == "" {
		path = config.ConfigFileName
	}

	cfg := config.DefaultConfig()
	applyServerOverride(cfg, server)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(path, cfg, force); err != nil {
		return err
	}

	ui.Success(out, "Created %s", path)
	io.WriteString(out, ui.Muted("  Next: run 'hwmon serve' and 'hwmon agent', then 'hwmon dashboard'.")+"\n")
	return nil
}
