//go:build windows
// +build windows

package platformservice

import (
	"fmt"
	"os"
	"strconv"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/redjax/sysreadout/internal/readout"
)

const (
	currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	processorKey      = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`
	biosKey           = `HARDWARE\DESCRIPTION\System\BIOS`
	cryptographyKey   = `SOFTWARE\Microsoft\Cryptography`
)

var procGetSystemPowerStatus = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetSystemPowerStatus")

// packageRoot maps the default "/" root to the system drive.
func packageRoot(root string) string {
	if root != "" && root != "/" {
		return root
	}
	if drive := os.Getenv("SystemDrive"); drive != "" {
		return drive + `\`
	}
	return `C:\`
}

func platformWiring(opts Options) readout.Wiring {
	w := commonWiring()

	g := &w.General
	g.Hostname = append(readout.Chain[string]{
		readout.NonEmpty(readout.Source("GetComputerName", windows.ComputerName)),
	}, g.Hostname...)
	g.Terminal = append(readout.Chain[string]{
		readout.Map(envSource("WT_SESSION"), func(string) (string, error) { return "Windows Terminal", nil }),
	}, g.Terminal...)
	g.Shell = shellChain(envSource("ComSpec"))
	g.CPUModelName = append(readout.Chain[string]{registryString(processorKey, "ProcessorNameString")}, g.CPUModelName...)
	g.Uptime = append(readout.Chain[uint64]{
		readout.Source("GetTickCount64", func() (uint64, error) {
			return windows.GetTickCount64() / 1000, nil
		}),
	}, g.Uptime...)
	g.OSName = append(readout.Chain[string]{
		readout.Source("registry:"+currentVersionKey, func() (string, error) {
			k, err := openKey(currentVersionKey)
			if err != nil {
				return "", err
			}
			defer k.Close()

			product, _, err := k.GetStringValue("ProductName")
			if err != nil {
				return "", readout.Unavailablef("ProductName: %v", err)
			}
			build, _, _ := k.GetStringValue("CurrentBuild")
			n, _ := strconv.Atoi(build)

			name := windowsProductName(product, n)
			if display, _, err := k.GetStringValue("DisplayVersion"); err == nil && display != "" {
				name += " " + display
			}
			return name, nil
		}),
	}, g.OSName...)
	g.MachineID = append(readout.Chain[string]{
		readout.Map(registryString(cryptographyKey, "MachineGuid"), normalizeMachineID),
	}, g.MachineID...)

	m := &w.Memory
	m.Total = append(readout.Chain[uint64]{globalMemory(func(s *windows.MemoryStatusEx) uint64 { return s.TotalPhys })}, m.Total...)
	m.Available = append(readout.Chain[uint64]{globalMemory(func(s *windows.MemoryStatusEx) uint64 { return s.AvailPhys })}, m.Available...)
	m.Free = append(readout.Chain[uint64]{globalMemory(func(s *windows.MemoryStatusEx) uint64 { return s.AvailPhys })}, m.Free...)

	w.Battery = readout.BatteryChains{
		Percentage: readout.Chain[uint8]{readout.Map(systemPowerStatus, powerStatus.percentage)},
		Status:     readout.Chain[readout.BatteryState]{readout.Map(systemPowerStatus, powerStatus.state)},
	}

	w.Kernel = readout.KernelChains{
		OSRelease: append(readout.Chain[string]{
			readout.Source("RtlGetVersion", func() (string, error) {
				v := windows.RtlGetVersion()
				return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
			}),
			registryString(currentVersionKey, "CurrentBuild"),
		}, w.Kernel.OSRelease...),
		OSType: readout.Chain[string]{readout.Fixed("windows", "Windows NT")},
	}

	w.Product = readout.ProductChains{
		Vendor:  readout.Chain[string]{registryString(biosKey, "SystemManufacturer")},
		Family:  readout.Chain[string]{registryString(biosKey, "SystemFamily")},
		Product: readout.Chain[string]{registryString(biosKey, "SystemProductName")},
	}

	return w
}

func openKey(path string) (registry.Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, readout.Unavailablef(`HKLM\%s: %v`, path, err)
	}
	return k, nil
}

// registryString reads one REG_SZ value below HKEY_LOCAL_MACHINE.
func registryString(path, name string) readout.Adapter[string] {
	return readout.Source("registry:"+name, func() (string, error) {
		k, err := openKey(path)
		if err != nil {
			return "", err
		}
		defer k.Close()

		v, _, err := k.GetStringValue(name)
		if err != nil {
			return "", readout.Unavailablef("%s: %v", name, err)
		}
		if v == "" || isPlaceholder(v) {
			return "", readout.Unavailablef("%s is empty", name)
		}
		return v, nil
	})
}

func globalMemory(pick func(*windows.MemoryStatusEx) uint64) readout.Adapter[uint64] {
	return readout.Source("GlobalMemoryStatusEx", func() (uint64, error) {
		var s windows.MemoryStatusEx
		s.Length = uint32(unsafe.Sizeof(s))
		if err := windows.GlobalMemoryStatusEx(&s); err != nil {
			return 0, readout.Otherf("GlobalMemoryStatusEx: %v", err)
		}
		return pick(&s), nil
	})
}

var systemPowerStatus = readout.Source("GetSystemPowerStatus", func() (powerStatus, error) {
	var s powerStatus
	if err := procGetSystemPowerStatus.Find(); err != nil {
		return s, readout.Unavailablef("GetSystemPowerStatus: %v", err)
	}

	r, _, err := procGetSystemPowerStatus.Call(uintptr(unsafe.Pointer(&s)))
	if r == 0 {
		return s, readout.Otherf("GetSystemPowerStatus: %v", err)
	}
	return s, nil
})
