package telemetry

import "time"

// StaleAfter is how old a host's latest sample may be before it counts as offline.
const StaleAfter = 5 * time.Minute

// IsOnline reports whether a sample taken at ts is fresh enough at now.
func IsOnline(ts, now time.Time) bool {
	return Classify(ts, now, StaleAfter)
}

// Classify is IsOnline with a caller-supplied staleness threshold.
// A zero or negative threshold falls back to StaleAfter.
func Classify(ts, now time.Time, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = StaleAfter
	}
	return now.Sub(ts) < threshold
}
