//go:build darwin
// +build darwin

package platformservice

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/redjax/sysreadout/internal/readout"
)

func packageRoot(root string) string { return root }

func platformWiring(opts Options) readout.Wiring {
	w := commonWiring()

	osName := readout.Chain[string]{
		commandSource(macOSName, "sw_vers", "-productVersion"),
		osNameGopsutil,
	}

	g := &w.General
	g.Hostname = append(readout.Chain[string]{sysctlString("kern.hostname")}, g.Hostname...)
	g.OSName = osName
	g.DesktopEnvironment = readout.Chain[string]{readout.Fixed("darwin", "Aqua")}
	g.CPUModelName = append(readout.Chain[string]{sysctlString("machdep.cpu.brand_string")}, g.CPUModelName...)
	g.Uptime = readout.Chain[uint64]{
		// Darwin's CLOCK_MONOTONIC keeps counting while asleep.
		readout.Source("clock_gettime CLOCK_MONOTONIC", func() (uint64, error) {
			var ts unix.Timespec
			if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
				return 0, readout.Otherf("clock_gettime: %v", err)
			}
			return uptimeFromClock(ts.Unix())
		}),
		readout.Source("sysctl kern.boottime", func() (uint64, error) {
			tv, err := unix.SysctlTimeval("kern.boottime")
			if err != nil {
				return 0, readout.Otherf("kern.boottime: %v", err)
			}
			sec, nsec := tv.Unix()
			return uptimeSince(time.Unix(sec, nsec), time.Now())
		}),
		commandSource(func(s string) (uint64, error) { return parseBoottime(s, time.Now()) }, "sysctl", "-n", "kern.boottime"),
		uptimeGopsutil,
	}
	g.MachineID = append(readout.Chain[string]{
		commandSource(parseIORegUUID, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice"),
	}, g.MachineID...)

	w.Memory.Total = append(readout.Chain[uint64]{
		readout.Source("sysctl hw.memsize", func() (uint64, error) {
			v, err := unix.SysctlUint64("hw.memsize")
			if err != nil {
				return 0, readout.Otherf("hw.memsize: %v", err)
			}
			return v, nil
		}),
	}, w.Memory.Total...)

	pmset := func() readout.Adapter[pmsetBattery] {
		return commandSource(parsePmset, "pmset", "-g", "batt")
	}
	w.Battery = readout.BatteryChains{
		Percentage: readout.Chain[uint8]{
			readout.Map(pmset(), func(b pmsetBattery) (uint8, error) { return b.Percentage, nil }),
		},
		Status: readout.Chain[readout.BatteryState]{
			readout.Map(pmset(), func(b pmsetBattery) (readout.BatteryState, error) { return b.State, nil }),
		},
	}

	w.Kernel = readout.KernelChains{
		OSRelease: append(readout.Chain[string]{sysctlString("kern.osrelease")}, w.Kernel.OSRelease...),
		OSType:    readout.Chain[string]{sysctlString("kern.ostype")},
	}

	model := sysctlString("hw.model")
	w.Product = readout.ProductChains{
		Vendor:  readout.Chain[string]{readout.Fixed("darwin", "Apple")},
		Family:  readout.Chain[string]{readout.Map(model, macFamily)},
		Product: readout.Chain[string]{model},
	}

	return w
}

func sysctlString(name string) readout.Adapter[string] {
	return readout.NonEmpty(readout.Source("sysctl "+name, func() (string, error) {
		v, err := unix.Sysctl(name)
		if err != nil {
			return "", readout.Otherf("%s: %v", name, err)
		}
		return v, nil
	}))
}
