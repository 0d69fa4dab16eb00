package telemetry

import "fmt"

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// GiB converts a raw byte count to binary gigabytes.
func GiB(bytes uint64) float64 {
	return float64(bytes) / gib
}

// MiB converts a raw byte count to binary megabytes.
func MiB(bytes uint64) float64 {
	return float64(bytes) / mib
}

// FormatBytes formats a byte count as a human-readable string using binary units.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}
