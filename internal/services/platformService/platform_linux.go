//go:build linux
// +build linux

package platformservice

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/zcalusic/sysinfo"
	"golang.org/x/sys/unix"

	"github.com/redjax/sysreadout/internal/readout"
)

func packageRoot(root string) string { return root }

func platformWiring(opts Options) readout.Wiring {
	fs := fsRoot(opts.Root)
	w := commonWiring()

	distribution := readout.Chain[string]{
		fs.osReleaseDistribution("etc", "os-release"),
		fs.osReleaseDistribution("usr", "lib", "os-release"),
		fs.lsbReleaseDistribution(),
		sysinfoSource(func(si *sysinfo.SysInfo) string { return si.OS.Name }),
		osNameGopsutil,
	}

	g := &w.General
	g.Hostname = readout.Chain[string]{
		readout.Source("/proc/sys/kernel/hostname", func() (string, error) {
			return fs.readTrimmed("proc", "sys", "kernel", "hostname")
		}),
		hostnameOS,
		unameSource(func(u *unix.Utsname) []byte { return u.Nodename[:] }),
		hostnameGopsutil,
	}
	g.Distribution = distribution
	g.OSName = distribution
	g.DesktopEnvironment = readout.Chain[string]{
		readout.Map(envSource("XDG_CURRENT_DESKTOP", "DESKTOP_SESSION", "XDG_SESSION_DESKTOP"), prettyDesktop),
	}
	g.Session = readout.Chain[string]{
		readout.Map(envSource("XDG_SESSION_TYPE"), func(s string) (string, error) {
			switch strings.ToLower(s) {
			case "x11":
				return "X11", nil
			case "tty":
				return "", readout.Unavailable("tty session")
			}
			return prettyName(s), nil
		}),
		displayServerSource,
	}
	g.WindowManager = readout.Chain[string]{
		readout.Source("compositor socket", windowManagerFromSockets),
		readout.Map(envSource("XDG_CURRENT_DESKTOP", "XDG_SESSION_DESKTOP", "DESKTOP_SESSION"), windowManagerForDesktop),
		readout.Source("/proc/*/comm", fs.procWindowManager),
	}
	g.Resolution = readout.Chain[string]{readout.Source("/sys/class/drm", fs.drmResolution)}
	g.GPUs = readout.Chain[[]string]{readout.Source("/sys/bus/pci/devices", fs.pciDisplayAdapters)}
	g.Shell = shellChain(fs.passwdShell())
	g.CPUTimes = readout.Chain[readout.CPUTimes]{
		readout.Source("/proc/stat", fs.cpuTimes),
		cpuTimesGopsutil,
	}
	g.Uptime = readout.Chain[uint64]{
		sysinfoUptime,
		readout.Source("/proc/uptime", fs.uptime),
		uptimeGopsutil,
	}
	g.MachineID = readout.Chain[string]{
		fs.machineIDFile("etc", "machine-id"),
		fs.machineIDFile("var", "lib", "dbus", "machine-id"),
		machineIDGopsutil,
	}
	g.Backlight = readout.Chain[uint8]{readout.Source("/sys/class/backlight", fs.backlight)}

	m := &w.Memory
	m.Total = append(readout.Chain[uint64]{
		fs.meminfoField("MemTotal"),
		sysinfoMemory(func(i *unix.Sysinfo_t) uint64 { return uint64(i.Totalram) }),
	}, m.Total...)
	m.Free = append(readout.Chain[uint64]{
		fs.meminfoField("MemFree"),
		sysinfoMemory(func(i *unix.Sysinfo_t) uint64 { return uint64(i.Freeram) }),
	}, m.Free...)
	m.Available = append(readout.Chain[uint64]{fs.meminfoField("MemAvailable")}, m.Available...)
	m.Buffers = readout.Chain[uint64]{
		fs.meminfoField("Buffers"),
		sysinfoMemory(func(i *unix.Sysinfo_t) uint64 { return uint64(i.Bufferram) }),
	}
	m.Cached = readout.Chain[uint64]{fs.meminfoField("Cached")}
	m.Reclaimable = readout.Chain[uint64]{fs.meminfoField("SReclaimable")}
	m.SwapTotal = append(readout.Chain[uint64]{
		fs.meminfoField("SwapTotal"),
		sysinfoMemory(func(i *unix.Sysinfo_t) uint64 { return uint64(i.Totalswap) }),
	}, m.SwapTotal...)
	m.SwapFree = append(readout.Chain[uint64]{
		fs.meminfoField("SwapFree"),
		sysinfoMemory(func(i *unix.Sysinfo_t) uint64 { return uint64(i.Freeswap) }),
	}, m.SwapFree...)

	w.Battery = readout.BatteryChains{
		Percentage: readout.Chain[uint8]{readout.Source("/sys/class/power_supply", fs.batteryPercentage)},
		Status:     readout.Chain[readout.BatteryState]{readout.Source("/sys/class/power_supply", fs.batteryStatus)},
		Health:     readout.Chain[uint8]{readout.Source("/sys/class/power_supply", fs.batteryHealth)},
	}

	w.Kernel = readout.KernelChains{
		OSRelease: readout.Chain[string]{
			unameSource(func(u *unix.Utsname) []byte { return u.Release[:] }),
			readout.Source("/proc/sys/kernel/osrelease", func() (string, error) {
				return fs.readTrimmed("proc", "sys", "kernel", "osrelease")
			}),
			kernelVersionGopsutil,
		},
		OSType: readout.Chain[string]{
			unameSource(func(u *unix.Utsname) []byte { return u.Sysname[:] }),
			readout.Source("/proc/sys/kernel/ostype", func() (string, error) {
				return fs.readTrimmed("proc", "sys", "kernel", "ostype")
			}),
		},
	}

	w.Product = readout.ProductChains{
		Vendor: readout.Chain[string]{
			fs.dmiSource("sys_vendor"),
			fs.dmiSource("board_vendor"),
			sysinfoSource(func(si *sysinfo.SysInfo) string { return si.Product.Vendor }),
		},
		Family: readout.Chain[string]{
			fs.dmiSource("product_family"),
		},
		Product: readout.Chain[string]{
			fs.dmiSource("product_name"),
			fs.deviceTreeModel(),
			sysinfoSource(func(si *sysinfo.SysInfo) string { return si.Product.Name }),
		},
	}

	n := &w.Network
	n.TxBytes = ioCounterChain(func(iface string) readout.Adapter[uint64] { return fs.netStat(iface, "tx_bytes") }, txBytes)
	n.TxPackets = ioCounterChain(func(iface string) readout.Adapter[uint64] { return fs.netStat(iface, "tx_packets") }, txPackets)
	n.RxBytes = ioCounterChain(func(iface string) readout.Adapter[uint64] { return fs.netStat(iface, "rx_bytes") }, rxBytes)
	n.RxPackets = ioCounterChain(func(iface string) readout.Adapter[uint64] { return fs.netStat(iface, "rx_packets") }, rxPackets)
	n.PhysicalAddress = physicalAddressChain(fs.sysfsAddress)

	return w
}

var sysinfoUptime = readout.Source("sysinfo(2)", func() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, readout.Otherf("sysinfo: %v", err)
	}
	if info.Uptime < 0 {
		return 0, readout.Otherf("sysinfo reported negative uptime %d", info.Uptime)
	}
	return uint64(info.Uptime), nil
})

func sysinfoMemory(pick func(*unix.Sysinfo_t) uint64) readout.Adapter[uint64] {
	return readout.Source("sysinfo(2)", func() (uint64, error) {
		var info unix.Sysinfo_t
		if err := unix.Sysinfo(&info); err != nil {
			return 0, readout.Otherf("sysinfo: %v", err)
		}
		unit := uint64(info.Unit)
		if unit == 0 {
			unit = 1
		}
		return pick(&info) * unit, nil
	})
}

func unameSource(pick func(*unix.Utsname) []byte) readout.Adapter[string] {
	return readout.Source("uname(2)", func() (string, error) {
		var u unix.Utsname
		if err := unix.Uname(&u); err != nil {
			return "", readout.Otherf("uname: %v", err)
		}
		s := unix.ByteSliceToString(pick(&u))
		if s == "" {
			return "", readout.Unavailable("uname returned an empty field")
		}
		return s, nil
	})
}

var (
	sysInfo     sysinfo.SysInfo
	sysInfoOnce sync.Once
)

// sysinfoSource reads one string from github.com/zcalusic/sysinfo, which
// combines DMI, os-release and kernel data. The snapshot is gathered once.
func sysinfoSource(pick func(*sysinfo.SysInfo) string) readout.Adapter[string] {
	return readout.Source("zcalusic/sysinfo", func() (string, error) {
		sysInfoOnce.Do(sysInfo.GetSysInfo)

		s := strings.TrimSpace(pick(&sysInfo))
		if s == "" {
			return "", readout.Unavailable("sysinfo reported an empty value")
		}
		return s, nil
	})
}

var displayServerSource = readout.Source("env:WAYLAND_DISPLAY,DISPLAY", func() (string, error) {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "Wayland", nil
	}
	if os.Getenv("DISPLAY") != "" {
		return "X11", nil
	}
	return "", readout.Unavailable("no display server in environment")
})

// passwdShell reads the login shell of the current user from /etc/passwd.
func (r fsRoot) passwdShell() readout.Adapter[string] {
	return readout.Source("/etc/passwd", func() (string, error) {
		file, err := os.Open(r.path("etc", "passwd"))
		if err != nil {
			return "", err
		}
		defer file.Close()

		uid := strconv.Itoa(os.Getuid())
		sc := bufio.NewScanner(file)
		for sc.Scan() {
			fields := strings.Split(sc.Text(), ":")
			if len(fields) == 7 && fields[2] == uid && fields[6] != "" {
				return fields[6], nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", readout.Unavailablef("uid %s not found in /etc/passwd", uid)
	})
}
