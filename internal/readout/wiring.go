package readout

import "time"

// DefaultSampleWindow is the CPUUsage sampling window when none is configured.
const DefaultSampleWindow = 250 * time.Millisecond

// GeneralChains binds every GeneralReadout field to its chain. Parameterised
// fields use chain factories; a nil factory means the field is unsupported.
type GeneralChains struct {
	Username           Chain[string]
	Hostname           Chain[string]
	Distribution       Chain[string]
	DesktopEnvironment Chain[string]
	Session            Chain[string]
	WindowManager      Chain[string]
	Resolution         Chain[string]
	GPUs               Chain[[]string]
	Terminal           Chain[string]
	Shell              func(format ShellFormat, kind ShellKind) Chain[string]
	CPUModelName       Chain[string]
	CPUTimes           Chain[CPUTimes]
	CPUPhysicalCores   Chain[int]
	CPUCores           Chain[int]
	Uptime             Chain[uint64]
	OSName             Chain[string]
	MachineID          Chain[string]
	DiskSpace          func(path string) Chain[DiskSpace]
	Backlight          Chain[uint8]
}

type MemoryChains struct {
	Total       Chain[uint64]
	Free        Chain[uint64]
	Available   Chain[uint64]
	Buffers     Chain[uint64]
	Cached      Chain[uint64]
	Reclaimable Chain[uint64]
	SwapTotal   Chain[uint64]
	SwapFree    Chain[uint64]
}

type BatteryChains struct {
	Percentage Chain[uint8]
	Status     Chain[BatteryState]
	Health     Chain[uint8]
}

type KernelChains struct {
	OSRelease Chain[string]
	OSType    Chain[string]
}

type ProductChains struct {
	Vendor  Chain[string]
	Family  Chain[string]
	Product Chain[string]
}

type NetworkChains struct {
	TxBytes         func(iface string) Chain[uint64]
	TxPackets       func(iface string) Chain[uint64]
	RxBytes         func(iface string) Chain[uint64]
	RxPackets       func(iface string) Chain[uint64]
	LogicalAddress  func(iface string) Chain[string]
	PhysicalAddress func(iface string) Chain[string]
	DefaultGateway  Chain[string]
}

// Wiring is the complete per-platform binding of fields to chains.
type Wiring struct {
	General GeneralChains
	Memory  MemoryChains
	Battery BatteryChains
	Kernel  KernelChains
	Product ProductChains
	Network NetworkChains

	// Packages backs the Package readout. Nil means no package manager is
	// supported on this platform.
	Packages PackageReadout

	// SampleWindow is how long CPUUsage waits between its two snapshots.
	SampleWindow time.Duration
	// Observe, if set, sees every adapter attempt.
	Observe Observer
	// Sleep replaces time.Sleep during CPUUsage sampling.
	Sleep func(time.Duration)
}

// New builds chain-backed readouts from w.
func New(w Wiring) Readouts {
	if w.SampleWindow <= 0 {
		w.SampleWindow = DefaultSampleWindow
	}
	if w.Sleep == nil {
		w.Sleep = time.Sleep
	}

	r := resolver{observe: w.Observe}
	product := &productReadout{r: r, c: w.Product}

	var pkgs PackageReadout = unsupportedPackages{}
	if w.Packages != nil {
		pkgs = w.Packages
	}

	return Readouts{
		General: &generalReadout{
			r:       r,
			c:       w.General,
			product: product,
			window:  w.SampleWindow,
			sleep:   w.Sleep,
		},
		Memory:  &memoryReadout{r: r, c: w.Memory},
		Battery: &batteryReadout{r: r, c: w.Battery},
		Kernel:  &kernelReadout{r: r, c: w.Kernel},
		Product: product,
		Network: &networkReadout{r: r, c: w.Network},
		Package: pkgs,
	}
}

type resolver struct {
	observe Observer
}

func resolveField[T any](r resolver, field Field, chain Chain[T]) (T, error) {
	return ResolveWith(field, chain, r.observe)
}

// relabel attributes a failure from a helper field to the public one.
func relabel(err error, field Field) error {
	if err == nil {
		return nil
	}
	e := Wrap(err)
	e.Field = field
	return e
}
