// Package convert renders raw readout values for humans.
package convert

import (
	"fmt"
	"strings"
)

func BytesToHumanReadable(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	// Units: KiB, MiB, GiB, TiB, PiB, EiB
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

// SecondsToHumanReadable renders an uptime, e.g. 93784 -> "1d 2h 3m".
// Durations under a minute are shown in seconds.
func SecondsToHumanReadable(secs uint64) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}

	days := secs / 86400
	hours := secs % 86400 / 3600
	mins := secs % 3600 / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}

// Percent renders p with one decimal unless it is whole.
func Percent(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d%%", int64(p))
	}
	return fmt.Sprintf("%.1f%%", p)
}
