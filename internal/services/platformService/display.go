package platformservice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/redjax/sysreadout/internal/readout"
)

// drmResolution reports the preferred mode of every connected DRM
// connector, e.g. "2560x1440, 1920x1080". Connectors are listed in
// /sys/class/drm order.
func (r fsRoot) drmResolution() (string, error) {
	base := r.path("sys", "class", "drm")
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}

	var modes []string
	for _, e := range entries {
		conn := fsRoot(filepath.Join(base, e.Name()))
		status, err := conn.readTrimmed("status")
		if err != nil || status != "connected" {
			continue
		}

		// modes lists supported modes, preferred first.
		data, err := os.ReadFile(conn.path("modes"))
		if err != nil {
			continue
		}
		first, _, _ := strings.Cut(string(data), "\n")
		if first = strings.TrimSpace(first); first != "" {
			modes = append(modes, first)
		}
	}

	if len(modes) == 0 {
		return "", readout.Unavailable("no connected display")
	}
	return strings.Join(modes, ", "), nil
}

// pciDisplayClass is the PCI base class of display controllers.
const pciDisplayClass = "0x03"

var pciVendors = map[string]string{
	"0x1002": "AMD",
	"0x10de": "NVIDIA",
	"0x8086": "Intel",
	"0x1af4": "Red Hat Virtio",
	"0x15ad": "VMware",
	"0x1234": "QEMU",
	"0x1a03": "ASPEED",
	"0x102b": "Matrox",
}

type pciDevice struct {
	name string
	boot bool
}

// pciDisplayAdapters lists display controllers from /sys/bus/pci/devices.
// The firmware's boot VGA device comes first.
func (r fsRoot) pciDisplayAdapters() ([]string, error) {
	base := r.path("sys", "bus", "pci", "devices")
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	var devices []pciDevice
	for _, e := range entries {
		dev := fsRoot(filepath.Join(base, e.Name()))
		class, err := dev.readTrimmed("class")
		if err != nil || !strings.HasPrefix(strings.ToLower(class), pciDisplayClass) {
			continue
		}
		devices = append(devices, pciDevice{name: dev.pciName(), boot: dev.isBootVGA()})
	}

	if len(devices) == 0 {
		return nil, readout.Unavailable("no display controller on the PCI bus")
	}

	slices.SortStableFunc(devices, func(a, b pciDevice) int {
		switch {
		case a.boot == b.boot:
			return 0
		case a.boot:
			return -1
		default:
			return 1
		}
	})

	out := make([]string, len(devices))
	for i, d := range devices {
		out[i] = d.name
	}
	return out, nil
}

// pciName prefers the firmware label, then "Vendor [vvvv:dddd]".
func (r fsRoot) pciName() string {
	if label, err := r.readTrimmed("label"); err == nil {
		return label
	}

	vendor, _ := r.readTrimmed("vendor")
	device, _ := r.readTrimmed("device")
	ids := fmt.Sprintf("[%s:%s]", strings.TrimPrefix(vendor, "0x"), strings.TrimPrefix(device, "0x"))

	if name, ok := pciVendors[strings.ToLower(vendor)]; ok {
		return name + " " + ids
	}
	return "PCI " + ids
}

func (r fsRoot) isBootVGA() bool {
	v, err := r.readTrimmed("boot_vga")
	return err == nil && v == "1"
}

// Window managers known by process name, keyed by /proc/<pid>/comm.
var windowManagerProcs = map[string]string{
	"mutter":        "Mutter",
	"gnome-shell":   "Mutter",
	"kwin_x11":      "KWin",
	"kwin_wayland":  "KWin",
	"xfwm4":         "Xfwm4",
	"muffin":        "Muffin",
	"cinnamon":      "Muffin",
	"marco":         "Marco",
	"openbox":       "Openbox",
	"fluxbox":       "Fluxbox",
	"i3":            "i3",
	"sway":          "Sway",
	"hyprland":      "Hyprland",
	"Hyprland":      "Hyprland",
	"bspwm":         "bspwm",
	"awesome":       "awesome",
	"dwm":           "dwm",
	"herbstluftwm":  "herbstluftwm",
	"qtile":         "Qtile",
	"river":         "river",
	"labwc":         "labwc",
	"wayfire":       "Wayfire",
	"niri":          "niri",
	"xmonad":        "xmonad",
	"icewm":         "IceWM",
	"enlightenment": "Enlightenment",
}

// windowManagerForDesktop maps a desktop environment to the window manager
// it ships with.
func windowManagerForDesktop(desktop string) (string, error) {
	if i := strings.LastIndexByte(desktop, ':'); i >= 0 {
		desktop = desktop[i+1:]
	}

	switch strings.ToLower(strings.TrimSpace(desktop)) {
	case "gnome", "unity", "budgie", "budgie-desktop", "pantheon":
		return "Mutter", nil
	case "kde", "plasma":
		return "KWin", nil
	case "xfce":
		return "Xfwm4", nil
	case "x-cinnamon", "cinnamon":
		return "Muffin", nil
	case "mate":
		return "Marco", nil
	case "lxde":
		return "Openbox", nil
	case "sway":
		return "Sway", nil
	case "hyprland":
		return "Hyprland", nil
	case "i3":
		return "i3", nil
	}
	return "", readout.Unavailablef("no known window manager for desktop %q", desktop)
}

// windowManagerSockets detects compositors that export their IPC socket.
var windowManagerSockets = []struct{ env, name string }{
	{"HYPRLAND_INSTANCE_SIGNATURE", "Hyprland"},
	{"SWAYSOCK", "Sway"},
	{"NIRI_SOCKET", "niri"},
	{"I3SOCK", "i3"},
}

func windowManagerFromSockets() (string, error) {
	for _, s := range windowManagerSockets {
		if os.Getenv(s.env) != "" {
			return s.name, nil
		}
	}
	return "", readout.Unavailable("no compositor socket in the environment")
}

// procWindowManager scans /proc/<pid>/comm for a known window manager.
func (r fsRoot) procWindowManager() (string, error) {
	base := r.path("proc")
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if !e.IsDir() || !isPID(e.Name()) {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(base, e.Name(), "comm"))
		if err != nil {
			continue
		}
		if name, ok := windowManagerProcs[string(bytes.TrimSpace(comm))]; ok {
			return name, nil
		}
	}
	return "", readout.Unavailable("no known window manager process")
}

func isPID(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
