package readout

import (
	"fmt"
	"strings"
)

// BatteryState is the charging state reported by a battery.
type BatteryState int

const (
	BatteryUnknown BatteryState = iota
	BatteryCharging
	BatteryDischarging
	BatteryFull
	BatteryNotCharging
)

func (s BatteryState) String() string {
	switch s {
	case BatteryCharging:
		return "Charging"
	case BatteryDischarging:
		return "Discharging"
	case BatteryFull:
		return "Full"
	case BatteryNotCharging:
		return "Not charging"
	default:
		return "Unknown"
	}
}

// ParseBatteryState maps the status strings used by power_supply class
// devices and pmset to a BatteryState.
func ParseBatteryState(s string) (BatteryState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "charging", "finishing charge":
		return BatteryCharging, nil
	case "discharging":
		return BatteryDischarging, nil
	case "full", "charged":
		return BatteryFull, nil
	case "not charging", "ac attached":
		return BatteryNotCharging, nil
	default:
		return BatteryUnknown, Otherf("unexpected battery status %q", s)
	}
}

// ShellFormat controls how Shell renders its result.
type ShellFormat int

const (
	// ShellRelative returns only the binary name, e.g. "zsh".
	ShellRelative ShellFormat = iota
	// ShellAbsolute returns the full path, e.g. "/usr/bin/zsh".
	ShellAbsolute
)

// ShellKind selects which shell Shell reports.
type ShellKind int

const (
	// ShellCurrent is the shell the process was started from.
	ShellCurrent ShellKind = iota
	// ShellDefault is the user's login shell.
	ShellDefault
)

// CPUTimes is one point-in-time snapshot of cumulative CPU counters.
// Units are whatever the source reports, as long as both fields share them.
type CPUTimes struct {
	Idle  float64
	Total float64
}

// DiskSpace is the used and total size of a filesystem in bytes.
type DiskSpace struct {
	Used  uint64
	Total uint64
}

// PackageResult is the outcome of one package backend.
type PackageResult struct {
	Backend string
	Count   uint64
	Err     error
}

// OK reports whether the backend produced a count.
func (r PackageResult) OK() bool { return r.Err == nil }

// PackageReport is the aggregated outcome of every registered backend.
// Total is the sum over succeeding backends only.
type PackageReport struct {
	Results []PackageResult
	Total   uint64
}

// Present returns the backends that produced a count.
func (r PackageReport) Present() []PackageResult {
	var out []PackageResult
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the backends that did not produce a count.
func (r PackageReport) Failed() []PackageResult {
	var out []PackageResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

func (r PackageReport) String() string {
	present := r.Present()
	parts := make([]string, 0, len(present))
	for _, res := range present {
		parts = append(parts, fmt.Sprintf("%d (%s)", res.Count, res.Backend))
	}
	return strings.Join(parts, ", ")
}
