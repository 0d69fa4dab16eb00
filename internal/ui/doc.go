// Package ui provides the terminal styling shared by hwmon's commands.
//
// # Components
//
//	Spinner      - animated status line for one-shot operations (render, host lookup)
//	PickHost     - interactive host selection using a Huh select
//	RenderHeader - "hwmon vX" banner used by serve and version
//	Success/Fail - single status lines with ✓ / ✗ markers
//
// Colors are lipgloss colors. DisableColors switches the global profile to
// ASCII for --no-color and non-terminal output.
package ui
