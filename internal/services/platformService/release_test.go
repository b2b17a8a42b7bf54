package platformservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
	"github.com/redjax/sysreadout/internal/utils/kvfile"
)

func TestDistributionFromOSRelease(t *testing.T) {
	tests := []struct {
		name string
		rec  kvfile.Record
		want string
		kind readout.Kind
	}{
		{name: "pretty name", rec: kvfile.Record{"PRETTY_NAME": "Arch Linux", "NAME": "Arch"}, want: "Arch Linux"},
		{name: "name and version", rec: kvfile.Record{"NAME": "Fedora Linux", "VERSION_ID": "40"}, want: "Fedora Linux 40"},
		{name: "id only", rec: kvfile.Record{"ID": "opensuse-tumbleweed"}, want: "Opensuse Tumbleweed"},
		{name: "empty", rec: kvfile.Record{"HOME_URL": "https://example.org"}, kind: readout.KindMetricNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := distributionFromOSRelease(tt.rec)
			if tt.kind != 0 {
				assert.Equal(t, tt.kind, readout.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistributionChain(t *testing.T) {
	fs := writeTree(t, map[string]string{
		"usr/lib/os-release": "NAME=\"Debian GNU/Linux\"\nVERSION_ID=\"12\"\n",
		"etc/lsb-release":    "DISTRIB_ID=Ubuntu\nDISTRIB_DESCRIPTION=\"Ubuntu 24.04 LTS\"\n",
	})

	var attempts []string
	got, err := readout.ResolveWith(readout.FieldDistribution, readout.Chain[string]{
		fs.osReleaseDistribution("etc", "os-release"),
		fs.osReleaseDistribution("usr", "lib", "os-release"),
		fs.lsbReleaseDistribution(),
	}, func(_ readout.Field, adapter string, _ *readout.Error) {
		attempts = append(attempts, adapter)
	})
	require.NoError(t, err)
	assert.Equal(t, "Debian GNU/Linux 12", got)
	assert.Len(t, attempts, 2)
}

func TestLSBRelease(t *testing.T) {
	fs := writeTree(t, map[string]string{"etc/lsb-release": "DISTRIB_ID=LinuxMint\nDISTRIB_RELEASE=21.3\n"})

	got, err := fs.lsbReleaseDistribution().Fetch()
	require.NoError(t, err)
	assert.Equal(t, "LinuxMint 21.3", got)
}

func TestPrettyDesktop(t *testing.T) {
	tests := map[string]string{
		"ubuntu:GNOME": "GNOME",
		"KDE":          "KDE Plasma",
		"X-Cinnamon":   "Cinnamon",
		"XFCE":         "Xfce",
		"sway":         "Sway",
		"Hyprland":     "Hyprland",
	}

	for in, want := range tests {
		got, err := prettyDesktop(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := prettyDesktop("ubuntu:")
	assert.True(t, readout.IsUnavailable(err))
}
