// Package cli implements the hwmon command-line interface.
//
// Each Cobra command parses its flags, loads the configuration and then
// hands off to a run function that takes explicit dependencies, which keeps
// the commands themselves thin and the run functions testable.
//
// # Command Structure
//
//	hwmon dashboard        - Live fleet dashboard
//	hwmon host [hostname]  - Live detail view for one host
//	hwmon render <host>    - Write a host's history chart to a PNG
//	hwmon serve            - Run the demo telemetry server
//	hwmon agent            - Report this machine to a server
//	hwmon init             - Create .hwmon.yaml
//	hwmon version          - Print build information
//
// # Live Views
//
// dashboard and host run a livesync controller per view. On a terminal the
// views render through the monitor TUI, and switching views stops the
// current controller before the next one starts. Without a terminal, or
// with --plain, updates are printed as timestamped log lines instead.
//
// # Flag Handling
//
// Global flags (--config, --server, --verbose, --no-color) are defined on
// the root command. --server overrides server.url from the config file.
package cli
