package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for hwmon.

Examples:
  # Bash
  hwmon completion bash > /etc/bash_completion.d/hwmon

  # Zsh
  hwmon completion zsh > "${fpath[1]}/_hwmon"

  # Fish
  hwmon completion fish > ~/.config/fish/completions/hwmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
