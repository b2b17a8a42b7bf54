package platformservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
)

func TestDRMResolution(t *testing.T) {
	fs := writeTree(t, map[string]string{
		"sys/class/drm/card0-DP-1/status":     "connected\n",
		"sys/class/drm/card0-DP-1/modes":      "2560x1440\n1920x1080\n1280x720\n",
		"sys/class/drm/card0-HDMI-A-1/status": "disconnected\n",
		"sys/class/drm/card0-HDMI-A-1/modes":  "",
		"sys/class/drm/card0-eDP-1/status":    "connected\n",
		"sys/class/drm/card0-eDP-1/modes":     "1920x1200\n",
		"sys/class/drm/version":               "drm 1.1.0 20060810\n",
	})

	res, err := fs.drmResolution()
	require.NoError(t, err)
	assert.Equal(t, "2560x1440, 1920x1200", res)
}

func TestDRMResolutionNoDisplay(t *testing.T) {
	fs := writeTree(t, map[string]string{
		"sys/class/drm/card0-DP-1/status": "disconnected\n",
		"sys/class/drm/card0-DP-1/modes":  "",
	})

	_, err := fs.drmResolution()
	assert.True(t, readout.IsUnavailable(err))

	_, err = readout.Resolve(readout.FieldResolution, readout.Chain[string]{
		readout.Source("/sys/class/drm", fsRoot(t.TempDir()).drmResolution),
	})
	assert.True(t, readout.IsUnavailable(err), "a missing drm class is unavailable")
}

func TestPCIDisplayAdapters(t *testing.T) {
	fs := writeTree(t, map[string]string{
		// Host bridge, not a display controller.
		"sys/bus/pci/devices/0000:00:00.0/class":  "0x060000\n",
		"sys/bus/pci/devices/0000:00:00.0/vendor": "0x8086\n",

		"sys/bus/pci/devices/0000:00:02.0/class":    "0x030000\n",
		"sys/bus/pci/devices/0000:00:02.0/vendor":   "0x8086\n",
		"sys/bus/pci/devices/0000:00:02.0/device":   "0xa780\n",
		"sys/bus/pci/devices/0000:00:02.0/boot_vga": "0\n",

		"sys/bus/pci/devices/0000:01:00.0/class":    "0x030000\n",
		"sys/bus/pci/devices/0000:01:00.0/vendor":   "0x10de\n",
		"sys/bus/pci/devices/0000:01:00.0/device":   "0x2684\n",
		"sys/bus/pci/devices/0000:01:00.0/boot_vga": "1\n",

		"sys/bus/pci/devices/0000:02:00.0/class":  "0x038000\n",
		"sys/bus/pci/devices/0000:02:00.0/vendor": "0xabcd\n",
		"sys/bus/pci/devices/0000:02:00.0/device": "0x0001\n",

		"sys/bus/pci/devices/0000:03:00.0/class": "0x030200\n",
		"sys/bus/pci/devices/0000:03:00.0/label": "Onboard VGA\n",
	})

	gpus, err := fs.pciDisplayAdapters()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"NVIDIA [10de:2684]",
		"Intel [8086:a780]",
		"PCI [abcd:0001]",
		"Onboard VGA",
	}, gpus)
}

func TestPCIDisplayAdaptersNone(t *testing.T) {
	fs := writeTree(t, map[string]string{
		"sys/bus/pci/devices/0000:00:00.0/class": "0x060000\n",
	})

	_, err := fs.pciDisplayAdapters()
	assert.True(t, readout.IsUnavailable(err))
}

func TestWindowManagerForDesktop(t *testing.T) {
	tests := []struct {
		desktop  string
		expected string
	}{
		{"GNOME", "Mutter"},
		{"ubuntu:GNOME", "Mutter"},
		{"KDE", "KWin"},
		{"XFCE", "Xfwm4"},
		{"X-Cinnamon", "Muffin"},
		{"MATE", "Marco"},
		{"sway", "Sway"},
		{"Hyprland", "Hyprland"},
	}

	for _, tt := range tests {
		t.Run(tt.desktop, func(t *testing.T) {
			got, err := windowManagerForDesktop(tt.desktop)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := windowManagerForDesktop("SomethingNew")
	assert.True(t, readout.IsUnavailable(err))
}

func TestWindowManagerFromSockets(t *testing.T) {
	for _, s := range windowManagerSockets {
		t.Setenv(s.env, "")
	}

	_, err := windowManagerFromSockets()
	assert.True(t, readout.IsUnavailable(err))

	t.Setenv("SWAYSOCK", "/run/user/1000/sway-ipc.1000.1234.sock")
	got, err := windowManagerFromSockets()
	require.NoError(t, err)
	assert.Equal(t, "Sway", got)
}

func TestProcWindowManager(t *testing.T) {
	fs := writeTree(t, map[string]string{
		"proc/1/comm":       "systemd\n",
		"proc/812/comm":     "Xorg\n",
		"proc/1204/comm":    "kwin_wayland\n",
		"proc/self/comm":    "sysreadout\n",
		"proc/meminfo":      "MemTotal: 1 kB\n",
		"proc/2210/cmdline": "",
	})

	got, err := fs.procWindowManager()
	require.NoError(t, err)
	assert.Equal(t, "KWin", got)

	fs = writeTree(t, map[string]string{"proc/1/comm": "init\n"})
	_, err = fs.procWindowManager()
	assert.True(t, readout.IsUnavailable(err))
}
