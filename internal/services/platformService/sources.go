package platformservice

import (
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackpal/gateway"
	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/redjax/sysreadout/internal/readout"
)

// Sources shared by every platform. Each adapter is named after the
// mechanism it uses so failures can be traced back to it.

func envSource(keys ...string) readout.Adapter[string] {
	return readout.Source("env:"+strings.Join(keys, ","), func() (string, error) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v, nil
			}
		}
		return "", readout.Unavailablef("%s not set", strings.Join(keys, ", "))
	})
}

var (
	usernameUser = readout.Source("os/user", func() (string, error) {
		u, err := user.Current()
		if err != nil {
			return "", err
		}
		// Windows reports DOMAIN\user.
		if i := strings.LastIndexByte(u.Username, '\\'); i >= 0 {
			return u.Username[i+1:], nil
		}
		return u.Username, nil
	})

	hostnameOS = readout.NonEmpty(readout.Source("os.Hostname", os.Hostname))

	hostnameGopsutil = readout.Source("gopsutil/host", func() (string, error) {
		info, err := host.Info()
		if err != nil {
			return "", err
		}
		if info.Hostname == "" {
			return "", readout.Unavailable("empty hostname")
		}
		return info.Hostname, nil
	})

	cpuModelCPUID = readout.Source("cpuid", func() (string, error) {
		if cpuid.CPU.BrandName == "" {
			return "", readout.Unavailable("cpuid reported no brand string")
		}
		return strings.TrimSpace(cpuid.CPU.BrandName), nil
	})

	cpuModelGopsutil = readout.Source("gopsutil/cpu", func() (string, error) {
		infos, err := cpu.Info()
		if err != nil {
			return "", err
		}
		if len(infos) == 0 || infos[0].ModelName == "" {
			return "", readout.Unavailable("no cpu model reported")
		}
		return strings.TrimSpace(infos[0].ModelName), nil
	})

	physicalCoresCPUID = readout.Source("cpuid", func() (int, error) {
		if cpuid.CPU.PhysicalCores <= 0 {
			return 0, readout.Unavailable("cpuid reported no physical cores")
		}
		return cpuid.CPU.PhysicalCores, nil
	})

	physicalCoresGopsutil = readout.Source("gopsutil/cpu", func() (int, error) {
		return positiveCount(cpu.Counts(false))
	})

	logicalCoresCPUID = readout.Source("cpuid", func() (int, error) {
		if cpuid.CPU.LogicalCores <= 0 {
			return 0, readout.Unavailable("cpuid reported no logical cores")
		}
		return cpuid.CPU.LogicalCores, nil
	})

	logicalCoresGopsutil = readout.Source("gopsutil/cpu", func() (int, error) {
		return positiveCount(cpu.Counts(true))
	})

	cpuTimesGopsutil = readout.Source("gopsutil/cpu", func() (readout.CPUTimes, error) {
		times, err := cpu.Times(false)
		if err != nil {
			return readout.CPUTimes{}, err
		}
		if len(times) == 0 {
			return readout.CPUTimes{}, readout.Unavailable("no cpu times reported")
		}

		t := times[0]
		return readout.CPUTimes{
			Idle:  t.Idle + t.Iowait,
			Total: t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal,
		}, nil
	})

	uptimeGopsutil = readout.Source("gopsutil/host", host.Uptime)

	kernelVersionGopsutil = readout.NonEmpty(readout.Source("gopsutil/host", host.KernelVersion))

	osNameGopsutil = readout.Source("gopsutil/host", func() (string, error) {
		platform, _, version, err := host.PlatformInformation()
		if err != nil {
			return "", err
		}
		if platform == "" {
			return "", readout.Unavailable("no platform name reported")
		}
		return strings.TrimSpace(prettyName(platform) + " " + version), nil
	})

	machineIDGopsutil = readout.Source("gopsutil/host", func() (string, error) {
		id, err := host.HostID()
		if err != nil {
			return "", err
		}
		return normalizeMachineID(id)
	})

	defaultGateway = readout.Source("gateway", func() (string, error) {
		gw, err := gateway.DiscoverGateway()
		if err != nil {
			return "", readout.Unavailablef("discovering gateway: %v", err)
		}
		if gw == nil || gw.IsUnspecified() {
			return "", readout.Unavailable("no default gateway")
		}
		return gw.String(), nil
	})
)

func positiveCount(n int, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, readout.Unavailable("count not reported")
	}
	return n, nil
}

// normalizeMachineID accepts hyphenated or bare 32 hex digit identifiers
// and returns the canonical hyphenated lower-case form.
func normalizeMachineID(s string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", readout.Otherf("invalid machine id %q: %v", s, err)
	}
	if id == uuid.Nil {
		return "", readout.Unavailable("machine id is all zeroes")
	}
	return id.String(), nil
}

func memoryGopsutil(pick func(*mem.VirtualMemoryStat) uint64) readout.Adapter[uint64] {
	return readout.Source("gopsutil/mem", func() (uint64, error) {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return 0, err
		}
		return pick(vm), nil
	})
}

func swapGopsutil(pick func(*mem.SwapMemoryStat) uint64) readout.Adapter[uint64] {
	return readout.Source("gopsutil/mem", func() (uint64, error) {
		sw, err := mem.SwapMemory()
		if err != nil {
			return 0, err
		}
		return pick(sw), nil
	})
}

func diskSpaceGopsutil(path string) readout.Chain[readout.DiskSpace] {
	return readout.Chain[readout.DiskSpace]{
		readout.Source("gopsutil/disk", func() (readout.DiskSpace, error) {
			target := path
			if target == "" {
				target = string(filepath.Separator)
			}
			u, err := disk.Usage(target)
			if err != nil {
				return readout.DiskSpace{}, err
			}
			return readout.DiskSpace{Used: u.Used, Total: u.Total}, nil
		}),
	}
}

// shellChain resolves the current shell from the parent process and the
// login shell from $SHELL.
func shellChain(loginShell ...readout.Adapter[string]) func(readout.ShellFormat, readout.ShellKind) readout.Chain[string] {
	return func(format readout.ShellFormat, kind readout.ShellKind) readout.Chain[string] {
		var chain readout.Chain[string]
		if kind == readout.ShellCurrent {
			chain = append(chain, parentProcessExe)
		}
		chain = append(chain, envSource("SHELL"))
		chain = append(chain, loginShell...)

		out := make(readout.Chain[string], len(chain))
		for i, a := range chain {
			out[i] = readout.Map(a, func(p string) (string, error) {
				if format == readout.ShellRelative {
					return strings.TrimSuffix(filepath.Base(p), ".exe"), nil
				}
				return p, nil
			})
		}
		return out
	}
}

var parentProcessExe = readout.Source("gopsutil/process", func() (string, error) {
	p, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return "", readout.Unavailablef("parent process: %v", err)
	}
	exe, err := p.Exe()
	if err != nil {
		return "", readout.Unavailablef("parent executable: %v", err)
	}
	if !isShell(exe) {
		return "", readout.Unavailablef("parent %s is not a shell", filepath.Base(exe))
	}
	return exe, nil
})

func isShell(exe string) bool {
	switch strings.TrimSuffix(strings.ToLower(filepath.Base(exe)), ".exe") {
	case "sh", "bash", "zsh", "fish", "dash", "ksh", "mksh", "tcsh", "csh",
		"nu", "elvish", "xonsh", "ion", "oil", "osh", "pwsh", "powershell", "cmd":
		return true
	}
	return false
}

// ioCounter picks one counter for iface from gopsutil's per-NIC statistics.
func ioCounter(iface string, pick func(gnet.IOCountersStat) uint64) readout.Adapter[uint64] {
	return readout.Source("gopsutil/net", func() (uint64, error) {
		name, err := resolveInterface(iface)
		if err != nil {
			return 0, err
		}

		counters, err := gnet.IOCounters(true)
		if err != nil {
			return 0, err
		}
		for _, c := range counters {
			if c.Name == name {
				return pick(c), nil
			}
		}
		return 0, readout.Unavailablef("no counters for interface %s", name)
	})
}

func txBytes(c gnet.IOCountersStat) uint64   { return c.BytesSent }
func txPackets(c gnet.IOCountersStat) uint64 { return c.PacketsSent }
func rxBytes(c gnet.IOCountersStat) uint64   { return c.BytesRecv }
func rxPackets(c gnet.IOCountersStat) uint64 { return c.PacketsRecv }

func ioCounterChain(extra func(iface string) readout.Adapter[uint64], pick func(gnet.IOCountersStat) uint64) func(string) readout.Chain[uint64] {
	return func(iface string) readout.Chain[uint64] {
		var chain readout.Chain[uint64]
		if extra != nil {
			chain = append(chain, extra(iface))
		}
		return append(chain, ioCounter(iface, pick))
	}
}

// resolveInterface returns iface, or the default-route interface when empty.
func resolveInterface(iface string) (string, error) {
	if iface != "" {
		return iface, nil
	}

	ip, err := gateway.DiscoverInterface()
	if err != nil {
		return "", readout.Unavailablef("no default interface: %v", err)
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, ifc := range ifaces {
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipn, ok := a.(*net.IPNet); ok && ipn.IP.Equal(ip) {
				return ifc.Name, nil
			}
		}
	}
	return "", readout.Unavailablef("no interface owns default address %s", ip)
}

func logicalAddressChain(iface string) readout.Chain[string] {
	return readout.Chain[string]{
		readout.Source("net.Interfaces", func() (string, error) {
			if iface == "" {
				ip, err := gateway.DiscoverInterface()
				if err != nil {
					return "", readout.Unavailablef("no default interface: %v", err)
				}
				return ip.String(), nil
			}

			ifc, err := net.InterfaceByName(iface)
			if err != nil {
				return "", readout.Unavailablef("interface %s: %v", iface, err)
			}
			addrs, err := ifc.Addrs()
			if err != nil {
				return "", err
			}
			for _, a := range addrs {
				if ipn, ok := a.(*net.IPNet); ok && ipn.IP.To4() != nil {
					return ipn.IP.String(), nil
				}
			}
			return "", readout.Unavailablef("interface %s has no IPv4 address", iface)
		}),
		readout.Source("gopsutil/net", func() (string, error) {
			name, err := resolveInterface(iface)
			if err != nil {
				return "", err
			}
			list, err := gnet.Interfaces()
			if err != nil {
				return "", err
			}
			for _, ifc := range list {
				if ifc.Name != name {
					continue
				}
				for _, a := range ifc.Addrs {
					ip, _, err := net.ParseCIDR(a.Addr)
					if err == nil && ip.To4() != nil {
						return ip.String(), nil
					}
				}
			}
			return "", readout.Unavailablef("interface %s has no IPv4 address", name)
		}),
	}
}

func physicalAddressChain(extra func(iface string) readout.Adapter[string]) func(string) readout.Chain[string] {
	return func(iface string) readout.Chain[string] {
		var chain readout.Chain[string]
		if extra != nil {
			chain = append(chain, extra(iface))
		}
		return append(chain, readout.Source("net.Interfaces", func() (string, error) {
			name, err := resolveInterface(iface)
			if err != nil {
				return "", err
			}
			ifc, err := net.InterfaceByName(name)
			if err != nil {
				return "", readout.Unavailablef("interface %s: %v", name, err)
			}
			if len(ifc.HardwareAddr) == 0 {
				return "", readout.Unavailablef("interface %s has no hardware address", name)
			}
			return ifc.HardwareAddr.String(), nil
		}))
	}
}

// commonWiring binds every field gopsutil, cpuid and the standard library
// can serve on any platform. Platform wiring prepends its own sources.
func commonWiring() readout.Wiring {
	return readout.Wiring{
		General: readout.GeneralChains{
			Username:         readout.Chain[string]{usernameUser, envSource("USER", "USERNAME", "LOGNAME")},
			Hostname:         readout.Chain[string]{hostnameOS, hostnameGopsutil},
			Terminal:         readout.Chain[string]{envSource("TERM_PROGRAM", "TERMINAL_EMULATOR", "TERM")},
			Shell:            shellChain(),
			CPUModelName:     readout.Chain[string]{cpuModelCPUID, cpuModelGopsutil},
			CPUTimes:         readout.Chain[readout.CPUTimes]{cpuTimesGopsutil},
			CPUPhysicalCores: readout.Chain[int]{physicalCoresCPUID, physicalCoresGopsutil},
			CPUCores:         readout.Chain[int]{logicalCoresGopsutil, logicalCoresCPUID},
			Uptime:           readout.Chain[uint64]{uptimeGopsutil},
			OSName:           readout.Chain[string]{osNameGopsutil},
			MachineID:        readout.Chain[string]{machineIDGopsutil},
			DiskSpace:        diskSpaceGopsutil,
		},
		Memory: readout.MemoryChains{
			Total:     readout.Chain[uint64]{memoryGopsutil(func(v *mem.VirtualMemoryStat) uint64 { return v.Total })},
			Free:      readout.Chain[uint64]{memoryGopsutil(func(v *mem.VirtualMemoryStat) uint64 { return v.Free })},
			Available: readout.Chain[uint64]{memoryGopsutil(func(v *mem.VirtualMemoryStat) uint64 { return v.Available })},
			SwapTotal: readout.Chain[uint64]{swapGopsutil(func(s *mem.SwapMemoryStat) uint64 { return s.Total })},
			SwapFree:  readout.Chain[uint64]{swapGopsutil(func(s *mem.SwapMemoryStat) uint64 { return s.Free })},
		},
		Kernel: readout.KernelChains{
			OSRelease: readout.Chain[string]{kernelVersionGopsutil},
		},
		Network: readout.NetworkChains{
			TxBytes:         ioCounterChain(nil, txBytes),
			TxPackets:       ioCounterChain(nil, txPackets),
			RxBytes:         ioCounterChain(nil, rxBytes),
			RxPackets:       ioCounterChain(nil, rxPackets),
			LogicalAddress:  logicalAddressChain,
			PhysicalAddress: physicalAddressChain(nil),
			DefaultGateway:  readout.Chain[string]{defaultGateway},
		},
	}
}
