package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Step completed
	SymbolFail     = "✗" // Step failed
	SymbolPending  = "○" // Step not yet started
	SymbolComplete = "●" // Step done (spinner final frame)
	SymbolOnline   = "◉" // Host reported recently
	SymbolOffline  = "◌" // Host is stale
	SymbolWarning  = "⚠"
)
