// Package monitor implements the terminal views for fleet telemetry.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: current route, the latest summary, host list or host sample,
//     and the most recent chart draw calls
//   - Update: keystrokes, window sizes, and messages from a sync session
//   - View: the dashboard (summary, host cards, fleet chart) or the host
//     detail view (CPU, memory, partitions, interfaces, history chart)
//
// # Sessions
//
// Data comes from a livesync.Controller running outside the program. Sink
// turns each controller callback into a message tagged with a session id.
// Opening a host or going back bumps the session, and the Switcher stops the
// old controller before starting the next one. Messages from an old session
// are dropped.
//
// # Charts
//
// Controllers record chart draw calls. The model replays the latest set onto
// a chart.Braille grid sized to the terminal each time it renders.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	j/k, ↑/↓    - Select host / scroll detail
//	Enter       - Open host detail
//	Esc         - Back to dashboard
//	?           - Toggle help overlay
package monitor
