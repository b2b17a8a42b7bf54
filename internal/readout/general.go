package readout

import (
	"context"
	"time"
)

type generalReadout struct {
	r       resolver
	c       GeneralChains
	product ProductReadout
	window  time.Duration
	sleep   func(time.Duration)
}

func (g *generalReadout) Username() (string, error) {
	return resolveField(g.r, FieldUsername, g.c.Username)
}

func (g *generalReadout) Hostname() (string, error) {
	return resolveField(g.r, FieldHostname, g.c.Hostname)
}

func (g *generalReadout) Distribution() (string, error) {
	return resolveField(g.r, FieldDistribution, g.c.Distribution)
}

func (g *generalReadout) DesktopEnvironment() (string, error) {
	return resolveField(g.r, FieldDesktopEnvironment, g.c.DesktopEnvironment)
}

func (g *generalReadout) Session() (string, error) {
	return resolveField(g.r, FieldSession, g.c.Session)
}

func (g *generalReadout) WindowManager() (string, error) {
	return resolveField(g.r, FieldWindowManager, g.c.WindowManager)
}

func (g *generalReadout) Resolution() (string, error) {
	return resolveField(g.r, FieldResolution, g.c.Resolution)
}

func (g *generalReadout) GPUs() ([]string, error) {
	gpus, err := resolveField(g.r, FieldGPUs, g.c.GPUs)
	if err == nil && len(gpus) == 0 {
		return nil, &Error{Kind: KindMetricNotAvailable, Field: FieldGPUs, Detail: "no display adapters found"}
	}
	return gpus, err
}

func (g *generalReadout) Terminal() (string, error) {
	return resolveField(g.r, FieldTerminal, g.c.Terminal)
}

func (g *generalReadout) Shell(format ShellFormat, kind ShellKind) (string, error) {
	if g.c.Shell == nil {
		return "", NotImplemented(FieldShell)
	}
	return resolveField(g.r, FieldShell, g.c.Shell(format, kind))
}

func (g *generalReadout) CPUModelName() (string, error) {
	return resolveField(g.r, FieldCPUModelName, g.c.CPUModelName)
}

func (g *generalReadout) CPUUsage() (float64, error) {
	first, idx, err := resolve(FieldCPUTimes, g.c.CPUTimes, g.r.observe)
	if err != nil {
		return 0, relabel(err, FieldCPUUsage)
	}

	g.sleep(g.window)

	// Both snapshots must come from the same source so their units agree.
	src := g.c.CPUTimes[idx]
	second, err := src.Fetch()
	if err != nil {
		e := Wrap(err)
		e.Field = FieldCPUUsage
		e.Adapter = src.Name
		return 0, e
	}

	usage, err := CPUUsageBetween(first, second)
	if err != nil {
		return 0, relabel(err, FieldCPUUsage)
	}
	return usage, nil
}

// CPUUsageBetween computes the busy percentage between two snapshots of
// cumulative counters, a taken before b.
func CPUUsageBetween(a, b CPUTimes) (float64, error) {
	total := b.Total - a.Total
	idle := b.Idle - a.Idle

	if total <= 0 {
		return 0, Unavailable("cpu counters did not advance")
	}
	if idle < 0 {
		return 0, Unavailable("cpu idle counter went backwards")
	}

	usage := 100 * (total - idle) / total
	switch {
	case usage < 0:
		usage = 0
	case usage > 100:
		usage = 100
	}
	return usage, nil
}

func (g *generalReadout) CPUPhysicalCores() (int, error) {
	return resolveField(g.r, FieldCPUPhysicalCores, g.c.CPUPhysicalCores)
}

func (g *generalReadout) CPUCores() (int, error) {
	return resolveField(g.r, FieldCPUCores, g.c.CPUCores)
}

func (g *generalReadout) Uptime() (uint64, error) {
	return resolveField(g.r, FieldUptime, g.c.Uptime)
}

func (g *generalReadout) Machine() (string, error) {
	vendor, err := g.product.Vendor()
	if err != nil {
		return "", relabel(err, FieldMachine)
	}

	product, err := g.product.Product()
	if err != nil {
		return "", relabel(err, FieldMachine)
	}

	return vendor + " " + product, nil
}

func (g *generalReadout) OSName() (string, error) {
	return resolveField(g.r, FieldOSName, g.c.OSName)
}

func (g *generalReadout) MachineID() (string, error) {
	return resolveField(g.r, FieldMachineID, g.c.MachineID)
}

func (g *generalReadout) DiskSpace(path string) (DiskSpace, error) {
	if g.c.DiskSpace == nil {
		return DiskSpace{}, NotImplemented(FieldDiskSpace)
	}
	return resolveField(g.r, FieldDiskSpace, g.c.DiskSpace(path))
}

func (g *generalReadout) Backlight() (uint8, error) {
	return resolveField(g.r, FieldBacklight, g.c.Backlight)
}

type unsupportedPackages struct{}

func (unsupportedPackages) CountPackages(context.Context) (PackageReport, error) {
	return PackageReport{}, NotImplemented(FieldPackageCount)
}
