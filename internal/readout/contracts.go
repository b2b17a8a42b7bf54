// Package readout defines the capability interfaces used to query machine
// and operating-system metadata, and the fallback resolver that backs each
// field with an ordered chain of platform sources.
//
// Callers program against the interfaces in this file. Only the wiring of
// chains to fields differs between platforms; a field a platform cannot
// provide is wired to an empty chain and always reports KindNotImplemented.
package readout

import "context"

// GeneralReadout exposes host-level information.
type GeneralReadout interface {
	Username() (string, error)
	Hostname() (string, error)
	Distribution() (string, error)
	DesktopEnvironment() (string, error)
	Session() (string, error)
	// WindowManager is the running window manager, e.g. "Mutter".
	WindowManager() (string, error)
	// Resolution lists each connected display's mode, e.g. "2560x1440, 1920x1080".
	Resolution() (string, error)
	// GPUs lists display adapters, most significant first.
	GPUs() ([]string, error)
	Terminal() (string, error)
	Shell(format ShellFormat, kind ShellKind) (string, error)
	CPUModelName() (string, error)
	// CPUUsage blocks for one sample window, takes two counter snapshots
	// and returns the busy share of that window in [0, 100].
	CPUUsage() (float64, error)
	CPUPhysicalCores() (int, error)
	CPUCores() (int, error)
	// Uptime is in seconds.
	Uptime() (uint64, error)
	// Machine is the product vendor and name, e.g. "LENOVO 20XW".
	Machine() (string, error)
	OSName() (string, error)
	MachineID() (string, error)
	DiskSpace(path string) (DiskSpace, error)
	// Backlight is the screen brightness in percent.
	Backlight() (uint8, error)
}

// MemoryReadout exposes physical memory and swap usage, in bytes.
type MemoryReadout interface {
	Total() (uint64, error)
	Free() (uint64, error)
	Available() (uint64, error)
	Buffers() (uint64, error)
	Cached() (uint64, error)
	Reclaimable() (uint64, error)
	// Used is Total minus Available.
	Used() (uint64, error)
	SwapTotal() (uint64, error)
	SwapFree() (uint64, error)
	SwapUsed() (uint64, error)
}

// BatteryReadout exposes the state of the primary battery.
type BatteryReadout interface {
	Percentage() (uint8, error)
	Status() (BatteryState, error)
	Health() (uint8, error)
}

// KernelReadout exposes kernel identification.
type KernelReadout interface {
	OSRelease() (string, error)
	OSType() (string, error)
	PrettyKernel() (string, error)
}

// ProductReadout exposes the hardware product identification.
type ProductReadout interface {
	Vendor() (string, error)
	Family() (string, error)
	Product() (string, error)
}

// NetworkReadout exposes per-interface counters and addresses. An empty
// interface name selects the interface holding the default route.
type NetworkReadout interface {
	TxBytes(iface string) (uint64, error)
	TxPackets(iface string) (uint64, error)
	RxBytes(iface string) (uint64, error)
	RxPackets(iface string) (uint64, error)
	LogicalAddress(iface string) (string, error)
	PhysicalAddress(iface string) (string, error)
	DefaultGateway() (string, error)
}

// PackageReadout counts installed packages across package managers.
type PackageReadout interface {
	CountPackages(ctx context.Context) (PackageReport, error)
}

// Readouts bundles one implementation of every capability interface.
type Readouts struct {
	General GeneralReadout
	Memory  MemoryReadout
	Battery BatteryReadout
	Kernel  KernelReadout
	Product ProductReadout
	Network NetworkReadout
	Package PackageReadout
}
