package platformservice

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/redjax/sysreadout/internal/readout"
)

// fsRoot resolves absolute system paths below a configurable root so the
// file sources can be exercised against fixture trees.
type fsRoot string

func (r fsRoot) path(elem ...string) string {
	root := string(r)
	if root == "" {
		root = "/"
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// readTrimmed reads a small sysfs/procfs style file and trims whitespace.
// An empty file is MetricNotAvailable.
func (r fsRoot) readTrimmed(elem ...string) (string, error) {
	p := r.path(elem...)
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}

	s := strings.TrimSpace(string(data))
	if s == "" {
		return "", readout.Unavailablef("%s is empty", p)
	}
	return s, nil
}

func (r fsRoot) readUint(elem ...string) (uint64, error) {
	s, err := r.readTrimmed(elem...)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, readout.Otherf("parsing %s: %v", r.path(elem...), err)
	}
	return v, nil
}

// meminfo parses /proc/meminfo. Values are converted from kB to bytes.
func (r fsRoot) meminfo() (map[string]uint64, error) {
	p := r.path("proc", "meminfo")
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]uint64)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		key, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		valueStr := strings.TrimSuffix(strings.TrimSpace(rest), " kB")
		value, err := strconv.ParseUint(valueStr, 10, 64)
		if err != nil {
			continue
		}

		const bytesPerKB = 1024
		if value > ^uint64(0)/bytesPerKB {
			continue
		}
		values[strings.TrimSpace(key)] = value * bytesPerKB
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", p, err)
	}

	return values, nil
}

// meminfoField returns an adapter reading one /proc/meminfo key.
func (r fsRoot) meminfoField(key string) readout.Adapter[uint64] {
	return readout.Source("/proc/meminfo", func() (uint64, error) {
		values, err := r.meminfo()
		if err != nil {
			return 0, err
		}

		v, ok := values[key]
		if !ok {
			return 0, readout.Unavailablef("%s missing from /proc/meminfo", key)
		}
		return v, nil
	})
}

// uptime parses the first field of /proc/uptime, in whole seconds.
func (r fsRoot) uptime() (uint64, error) {
	s, err := r.readTrimmed("proc", "uptime")
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(s)
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 {
		return 0, readout.Otherf("malformed /proc/uptime: %q", s)
	}
	return uint64(secs), nil
}

// cpuTimes reads the aggregate "cpu" line of /proc/stat. Idle includes iowait.
// Guest time is already part of user time and is not added again.
func (r fsRoot) cpuTimes() (readout.CPUTimes, error) {
	p := r.path("proc", "stat")
	file, err := os.Open(p)
	if err != nil {
		return readout.CPUTimes{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}

		var vals []float64
		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return readout.CPUTimes{}, readout.Otherf("malformed cpu line in %s: %v", p, err)
			}
			vals = append(vals, float64(v))
		}

		// user nice system idle iowait irq softirq steal guest guest_nice
		if len(vals) > 8 {
			vals = vals[:8]
		}

		var t readout.CPUTimes
		for i, v := range vals {
			t.Total += v
			if i == 3 || i == 4 {
				t.Idle += v
			}
		}
		return t, nil
	}

	if err := scanner.Err(); err != nil {
		return readout.CPUTimes{}, err
	}
	return readout.CPUTimes{}, readout.Unavailablef("no aggregate cpu line in %s", p)
}

// batteryDir returns the first power_supply entry of type Battery.
func (r fsRoot) batteryDir() (string, error) {
	base := r.path("sys", "class", "power_supply")
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		typ, err := os.ReadFile(filepath.Join(base, e.Name(), "type"))
		if err == nil && strings.TrimSpace(string(typ)) == "Battery" {
			return filepath.Join(base, e.Name()), nil
		}
	}
	return "", readout.Unavailable("no battery present")
}

func (r fsRoot) batteryPercentage() (uint8, error) {
	dir, err := r.batteryDir()
	if err != nil {
		return 0, err
	}

	v, err := fsRoot(dir).readUint("capacity")
	if err != nil {
		return 0, err
	}
	if v > 100 {
		return 0, readout.Otherf("battery capacity %d out of range", v)
	}
	return uint8(v), nil
}

func (r fsRoot) batteryStatus() (readout.BatteryState, error) {
	dir, err := r.batteryDir()
	if err != nil {
		return readout.BatteryUnknown, err
	}

	s, err := fsRoot(dir).readTrimmed("status")
	if err != nil {
		return readout.BatteryUnknown, err
	}
	return readout.ParseBatteryState(s)
}

// batteryHealth is full capacity over design capacity, from either the
// energy_* (µWh) or charge_* (µAh) attribute pair.
func (r fsRoot) batteryHealth() (uint8, error) {
	dir, err := r.batteryDir()
	if err != nil {
		return 0, err
	}
	bat := fsRoot(dir)

	for _, prefix := range []string{"energy", "charge"} {
		full, errFull := bat.readUint(prefix + "_full")
		design, errDesign := bat.readUint(prefix + "_full_design")
		if errFull != nil || errDesign != nil {
			continue
		}
		if design == 0 {
			return 0, readout.Unavailable("battery design capacity is zero")
		}

		health := full * 100 / design
		if health > 100 {
			health = 100
		}
		return uint8(health), nil
	}
	return 0, readout.Unavailable("battery exposes no capacity attributes")
}

// netStat reads /sys/class/net/<iface>/statistics/<name>.
func (r fsRoot) netStat(iface, stat string) readout.Adapter[uint64] {
	return readout.Source("/sys/class/net", func() (uint64, error) {
		name, err := resolveInterface(iface)
		if err != nil {
			return 0, err
		}
		return r.readUint("sys", "class", "net", name, "statistics", stat)
	})
}

// backlight returns the first backlight device's brightness in percent.
func (r fsRoot) backlight() (uint8, error) {
	base := r.path("sys", "class", "backlight")
	entries, err := os.ReadDir(base)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, readout.Unavailable("no backlight device")
	}

	dev := fsRoot(filepath.Join(base, entries[0].Name()))
	cur, err := dev.readUint("brightness")
	if err != nil {
		return 0, err
	}
	maxBrightness, err := dev.readUint("max_brightness")
	if err != nil {
		return 0, err
	}
	if maxBrightness == 0 {
		return 0, readout.Unavailable("max_brightness is zero")
	}

	pct := cur * 100 / maxBrightness
	if pct > 100 {
		pct = 100
	}
	return uint8(pct), nil
}

// dmiSource reads /sys/class/dmi/id/<name>, rejecting firmware placeholders.
func (r fsRoot) dmiSource(name string) readout.Adapter[string] {
	return readout.Source("/sys/class/dmi/id/"+name, func() (string, error) {
		s, err := r.readTrimmed("sys", "class", "dmi", "id", name)
		if err != nil {
			return "", err
		}
		if isPlaceholder(s) {
			return "", readout.Unavailablef("%s holds placeholder %q", name, s)
		}
		return s, nil
	})
}

// deviceTreeModel reads the board model on device-tree systems such as
// single-board ARM computers.
func (r fsRoot) deviceTreeModel() readout.Adapter[string] {
	return readout.Source("/sys/firmware/devicetree/base/model", func() (string, error) {
		data, err := os.ReadFile(r.path("sys", "firmware", "devicetree", "base", "model"))
		if err != nil {
			return "", err
		}
		s := strings.TrimSpace(strings.TrimRight(string(data), "\x00"))
		if s == "" {
			return "", readout.Unavailable("device tree model is empty")
		}
		return s, nil
	})
}

func isPlaceholder(s string) bool {
	switch strings.ToLower(s) {
	case "to be filled by o.e.m.", "default string", "system product name",
		"system manufacturer", "not applicable", "not specified", "none", "o.e.m.":
		return true
	}
	return false
}

// machineIDFile reads a systemd/dbus style machine-id file.
func (r fsRoot) machineIDFile(elem ...string) readout.Adapter[string] {
	return readout.Source(r.path(elem...), func() (string, error) {
		s, err := r.readTrimmed(elem...)
		if err != nil {
			return "", err
		}
		return normalizeMachineID(s)
	})
}

// sysfsAddress reads /sys/class/net/<iface>/address.
func (r fsRoot) sysfsAddress(iface string) readout.Adapter[string] {
	return readout.Source("/sys/class/net", func() (string, error) {
		name, err := resolveInterface(iface)
		if err != nil {
			return "", err
		}

		addr, err := r.readTrimmed("sys", "class", "net", name, "address")
		if err != nil {
			return "", err
		}
		if addr == "00:00:00:00:00:00" {
			return "", readout.Unavailablef("interface %s has no hardware address", name)
		}
		return addr, nil
	})
}
