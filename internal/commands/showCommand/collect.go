package showCommand

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redjax/sysreadout/internal/readout"
	"github.com/redjax/sysreadout/internal/utils/convert"
)

// Entry is one resolved field ready for rendering.
type Entry struct {
	Field readout.Field
	// Value is the raw result. It is nil when Err is set, except for a
	// package report whose backends all failed.
	Value any
	// Text is Value formatted for humans.
	Text string
	Err  error
}

// Params select the parameterised variants of some fields.
type Params struct {
	Iface    string
	DiskPath string
	Shell    readout.ShellFormat
}

type collector func(ctx context.Context, r readout.Readouts, p Params) (any, string, error)

func text(v string, err error) (any, string, error) {
	if err != nil {
		return nil, "", err
	}
	return v, v, nil
}

func bytesValue(v uint64, err error) (any, string, error) {
	if err != nil {
		return nil, "", err
	}
	return v, convert.BytesToHumanReadable(v), nil
}

func percentValue(v uint8, err error) (any, string, error) {
	if err != nil {
		return nil, "", err
	}
	return v, convert.Percent(float64(v)), nil
}

func general(get func(readout.GeneralReadout) (string, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		return text(get(r.General))
	}
}

func cores(get func(readout.GeneralReadout) (int, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		v, err := get(r.General)
		if err != nil {
			return nil, "", err
		}
		return v, strconv.Itoa(v), nil
	}
}

func memory(get func(readout.MemoryReadout) (uint64, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		return bytesValue(get(r.Memory))
	}
}

func kernel(get func(readout.KernelReadout) (string, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		return text(get(r.Kernel))
	}
}

func product(get func(readout.ProductReadout) (string, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		return text(get(r.Product))
	}
}

func netBytes(get func(readout.NetworkReadout, string) (uint64, error)) collector {
	return func(_ context.Context, r readout.Readouts, p Params) (any, string, error) {
		return bytesValue(get(r.Network, p.Iface))
	}
}

func netPackets(get func(readout.NetworkReadout, string) (uint64, error)) collector {
	return func(_ context.Context, r readout.Readouts, p Params) (any, string, error) {
		v, err := get(r.Network, p.Iface)
		if err != nil {
			return nil, "", err
		}
		return v, strconv.FormatUint(v, 10), nil
	}
}

func netAddress(get func(readout.NetworkReadout, string) (string, error)) collector {
	return func(_ context.Context, r readout.Readouts, p Params) (any, string, error) {
		return text(get(r.Network, p.Iface))
	}
}

// collectors maps every displayable field to its readout call.
var collectors = map[readout.Field]collector{
	readout.FieldUsername:           general(readout.GeneralReadout.Username),
	readout.FieldHostname:           general(readout.GeneralReadout.Hostname),
	readout.FieldDistribution:       general(readout.GeneralReadout.Distribution),
	readout.FieldDesktopEnvironment: general(readout.GeneralReadout.DesktopEnvironment),
	readout.FieldSession:            general(readout.GeneralReadout.Session),
	readout.FieldWindowManager:      general(readout.GeneralReadout.WindowManager),
	readout.FieldResolution:         general(readout.GeneralReadout.Resolution),
	readout.FieldGPUs:               gpus,
	readout.FieldTerminal:           general(readout.GeneralReadout.Terminal),
	readout.FieldShell:              shell,
	readout.FieldCPUModelName:       general(readout.GeneralReadout.CPUModelName),
	readout.FieldCPUUsage:           cpuUsage,
	readout.FieldCPUPhysicalCores:   cores(readout.GeneralReadout.CPUPhysicalCores),
	readout.FieldCPUCores:           cores(readout.GeneralReadout.CPUCores),
	readout.FieldUptime:             uptime,
	readout.FieldMachine:            general(readout.GeneralReadout.Machine),
	readout.FieldOSName:             general(readout.GeneralReadout.OSName),
	readout.FieldMachineID:          general(readout.GeneralReadout.MachineID),
	readout.FieldDiskSpace:          diskSpace,
	readout.FieldBacklight:          backlight,

	readout.FieldMemoryTotal:       memory(readout.MemoryReadout.Total),
	readout.FieldMemoryFree:        memory(readout.MemoryReadout.Free),
	readout.FieldMemoryAvailable:   memory(readout.MemoryReadout.Available),
	readout.FieldMemoryBuffers:     memory(readout.MemoryReadout.Buffers),
	readout.FieldMemoryCached:      memory(readout.MemoryReadout.Cached),
	readout.FieldMemoryReclaimable: memory(readout.MemoryReadout.Reclaimable),
	readout.FieldMemoryUsed:        memory(readout.MemoryReadout.Used),
	readout.FieldSwapTotal:         memory(readout.MemoryReadout.SwapTotal),
	readout.FieldSwapFree:          memory(readout.MemoryReadout.SwapFree),
	readout.FieldSwapUsed:          memory(readout.MemoryReadout.SwapUsed),

	readout.FieldBatteryPercentage: battery(readout.BatteryReadout.Percentage),
	readout.FieldBatteryStatus:     batteryStatus,
	readout.FieldBatteryHealth:     battery(readout.BatteryReadout.Health),

	readout.FieldOSRelease:    kernel(readout.KernelReadout.OSRelease),
	readout.FieldOSType:       kernel(readout.KernelReadout.OSType),
	readout.FieldPrettyKernel: kernel(readout.KernelReadout.PrettyKernel),

	readout.FieldProductVendor: product(readout.ProductReadout.Vendor),
	readout.FieldProductFamily: product(readout.ProductReadout.Family),
	readout.FieldProductName:   product(readout.ProductReadout.Product),

	readout.FieldTxBytes:         netBytes(readout.NetworkReadout.TxBytes),
	readout.FieldTxPackets:       netPackets(readout.NetworkReadout.TxPackets),
	readout.FieldRxBytes:         netBytes(readout.NetworkReadout.RxBytes),
	readout.FieldRxPackets:       netPackets(readout.NetworkReadout.RxPackets),
	readout.FieldLogicalAddress:  netAddress(readout.NetworkReadout.LogicalAddress),
	readout.FieldPhysicalAddress: netAddress(readout.NetworkReadout.PhysicalAddress),
	readout.FieldDefaultGateway:  defaultGateway,

	readout.FieldPackageCount: packageCount,
}

func shell(_ context.Context, r readout.Readouts, p Params) (any, string, error) {
	return text(r.General.Shell(p.Shell, readout.ShellCurrent))
}

func gpus(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	v, err := r.General.GPUs()
	if err != nil {
		return nil, "", err
	}
	return v, strings.Join(v, ", "), nil
}

func cpuUsage(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	v, err := r.General.CPUUsage()
	if err != nil {
		return nil, "", err
	}
	return v, convert.Percent(v), nil
}

func uptime(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	v, err := r.General.Uptime()
	if err != nil {
		return nil, "", err
	}
	return v, convert.SecondsToHumanReadable(v), nil
}

func diskSpace(_ context.Context, r readout.Readouts, p Params) (any, string, error) {
	v, err := r.General.DiskSpace(p.DiskPath)
	if err != nil {
		return nil, "", err
	}
	return v, convert.BytesToHumanReadable(v.Used) + " / " + convert.BytesToHumanReadable(v.Total), nil
}

func backlight(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	return percentValue(r.General.Backlight())
}

func battery(get func(readout.BatteryReadout) (uint8, error)) collector {
	return func(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
		return percentValue(get(r.Battery))
	}
}

func batteryStatus(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	v, err := r.Battery.Status()
	if err != nil {
		return nil, "", err
	}
	return v.String(), v.String(), nil
}

func defaultGateway(_ context.Context, r readout.Readouts, _ Params) (any, string, error) {
	return text(r.Network.DefaultGateway())
}

// packageCount keeps the report when every backend failed so renderers can
// still list the per-backend errors.
func packageCount(ctx context.Context, r readout.Readouts, _ Params) (any, string, error) {
	report, err := r.Package.CountPackages(ctx)
	if err != nil {
		if len(report.Results) == 0 {
			return nil, "", err
		}
		return report, "", err
	}
	return report, report.String(), nil
}

// Displayable lists the fields show can print, in display order.
func Displayable(category readout.Category) []readout.Field {
	var out []readout.Field
	for _, f := range readout.Fields() {
		if _, ok := collectors[f]; ok && (category == "" || f.Category == category) {
			out = append(out, f)
		}
	}
	return out
}

// ParseFields resolves "category.name" selectors, also accepting a bare
// name when it is unique across categories.
func ParseFields(selectors []string) ([]readout.Field, error) {
	var out []readout.Field
	for _, s := range selectors {
		if f, ok := readout.LookupField(s); ok {
			if _, shown := collectors[f]; shown {
				out = append(out, f)
				continue
			}
		}

		var matches []readout.Field
		for _, f := range Displayable("") {
			if f.Name == s {
				matches = append(matches, f)
			}
		}
		switch len(matches) {
		case 1:
			out = append(out, matches[0])
		case 0:
			return nil, fmt.Errorf("unknown field %q", s)
		default:
			return nil, fmt.Errorf("field %q is ambiguous, use one of %s", s, joinFields(matches))
		}
	}
	return out, nil
}

func joinFields(fields []readout.Field) string {
	var s string
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += strconv.Quote(f.String())
	}
	return s
}

// Collect resolves fields in order. Failures are kept per entry; one
// missing field never hides the others.
func Collect(ctx context.Context, r readout.Readouts, fields []readout.Field, p Params) []Entry {
	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		c, ok := collectors[f]
		if !ok {
			entries = append(entries, Entry{Field: f, Err: readout.NotImplemented(f)})
			continue
		}

		v, s, err := c(ctx, r, p)
		entries = append(entries, Entry{Field: f, Value: v, Text: s, Err: err})
	}
	return entries
}
