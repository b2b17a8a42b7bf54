package platformservice

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/redjax/sysreadout/internal/readout"
	"github.com/redjax/sysreadout/internal/services/platformService/capabilities"
)

const commandTimeout = 2 * time.Second

// commandSource runs name with args and parses its standard output. A missing
// binary is MetricNotAvailable.
func commandSource[T any](parse func(string) (T, error), name string, args ...string) readout.Adapter[T] {
	label := strings.TrimSpace(name + " " + strings.Join(args, " "))

	return readout.Source(label, func() (T, error) {
		var zero T

		path, err := capabilities.Which(name)
		if err != nil {
			return zero, readout.Unavailablef("%s not found", name)
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		out, err := exec.CommandContext(ctx, path, args...).Output()
		if err != nil {
			return zero, readout.Otherf("%s: %v", label, err)
		}
		return parse(string(out))
	})
}

func trimmedOutput(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", readout.Unavailable("command printed nothing")
	}
	return s, nil
}

// parseBoottime parses `sysctl -n kern.boottime` output of the form
// "{ sec = 1710000000, usec = 0 } Sat Mar  9 ..." into seconds since boot.
func parseBoottime(s string, now time.Time) (uint64, error) {
	_, rest, ok := strings.Cut(s, "sec =")
	if !ok {
		return 0, readout.Otherf("malformed kern.boottime %q", s)
	}
	secStr, _, _ := strings.Cut(rest, ",")

	sec, err := strconv.ParseInt(strings.TrimSpace(secStr), 10, 64)
	if err != nil {
		return 0, readout.Otherf("malformed kern.boottime %q", s)
	}
	return uptimeSince(time.Unix(sec, 0), now)
}

// uptimeFromClock converts a monotonic clock reading taken since boot.
func uptimeFromClock(sec, nsec int64) (uint64, error) {
	if sec < 0 || nsec < 0 {
		return 0, readout.Otherf("negative monotonic clock %d.%09d", sec, nsec)
	}
	if sec == 0 && nsec == 0 {
		return 0, readout.Unavailable("monotonic clock reads zero")
	}
	return uint64(sec), nil
}

func uptimeSince(boot, now time.Time) (uint64, error) {
	d := now.Sub(boot)
	if d < 0 {
		return 0, readout.Otherf("boot time %s is in the future", boot.Format(time.RFC3339))
	}
	return uint64(d / time.Second), nil
}

// pmsetBattery is one battery line of `pmset -g batt`.
type pmsetBattery struct {
	Percentage uint8
	State      readout.BatteryState
}

// parsePmset reads the first battery of `pmset -g batt`:
//
//	Now drawing from 'AC Power'
//	 -InternalBattery-0 (id=4653155)	95%; charging; 1:05 remaining present: true
func parsePmset(s string) (pmsetBattery, error) {
	for _, line := range strings.Split(s, "\n") {
		if !strings.Contains(line, "InternalBattery") {
			continue
		}

		_, rest, ok := strings.Cut(line, "\t")
		if !ok {
			return pmsetBattery{}, readout.Otherf("malformed pmset line %q", line)
		}

		parts := strings.Split(rest, ";")
		if len(parts) < 2 {
			return pmsetBattery{}, readout.Otherf("malformed pmset line %q", line)
		}

		pct, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimSpace(parts[0]), "%"), 10, 8)
		if err != nil || pct > 100 {
			return pmsetBattery{}, readout.Otherf("malformed battery percentage in %q", line)
		}

		state, err := readout.ParseBatteryState(strings.TrimSpace(parts[1]))
		if err != nil {
			return pmsetBattery{}, err
		}
		return pmsetBattery{Percentage: uint8(pct), State: state}, nil
	}
	return pmsetBattery{}, readout.Unavailable("no battery reported by pmset")
}

// parseIORegUUID extracts IOPlatformUUID from `ioreg -rd1 -c IOPlatformExpertDevice`.
func parseIORegUUID(s string) (string, error) {
	for _, line := range strings.Split(s, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.Trim(strings.TrimSpace(key), `"`) != "IOPlatformUUID" {
			continue
		}
		return normalizeMachineID(strings.Trim(strings.TrimSpace(value), `"`))
	}
	return "", readout.Unavailable("IOPlatformUUID not reported")
}

// macFamily strips the revision from a model identifier, "MacBookPro18,3"
// becoming "MacBookPro".
func macFamily(model string) (string, error) {
	family := strings.TrimRight(model, "0123456789,")
	if family == "" {
		return "", readout.Unavailablef("no family in model %q", model)
	}
	return family, nil
}

// macOSName parses `sw_vers -productVersion`.
func macOSName(s string) (string, error) {
	v, err := trimmedOutput(s)
	if err != nil {
		return "", err
	}
	return "macOS " + v, nil
}
