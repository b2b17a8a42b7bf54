package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redjax/sysreadout/internal/utils/kvfile"
)

func TestFromOSRelease(t *testing.T) {
	tests := []struct {
		name string
		rec  kvfile.Record
		want PlatformConstants
	}{
		{
			name: "ubuntu",
			rec:  kvfile.Record{"ID": "ubuntu", "ID_LIKE": "debian", "VERSION_ID": "24.04"},
			want: PlatformConstants{Family: "debian", Distribution: "ubuntu", Release: "24.04", PackageManager: "apt"},
		},
		{
			name: "fedora",
			rec:  kvfile.Record{"ID": "fedora", "VERSION_ID": "42"},
			want: PlatformConstants{Family: "redhat", Distribution: "fedora", Release: "42", PackageManager: "dnf"},
		},
		{
			name: "tumbleweed",
			rec:  kvfile.Record{"ID": "opensuse-tumbleweed", "ID_LIKE": "opensuse suse"},
			want: PlatformConstants{Family: "suse", Distribution: "opensuse-tumbleweed", PackageManager: "zypper"},
		},
		{
			name: "unknown id with known ID_LIKE",
			rec:  kvfile.Record{"ID": "zorin", "ID_LIKE": "ubuntu debian", "VERSION_ID": "17"},
			want: PlatformConstants{Family: "debian", Distribution: "zorin", Release: "17", PackageManager: "apt"},
		},
		{
			name: "ID_LIKE substring",
			rec:  kvfile.Record{"ID": "ol", "ID_LIKE": "rhel-compatible"},
			want: PlatformConstants{Family: "redhat", Distribution: "ol", PackageManager: "dnf"},
		},
		{
			name: "uppercase id",
			rec:  kvfile.Record{"ID": "Arch"},
			want: PlatformConstants{Family: "arch", Distribution: "arch", PackageManager: "pacman"},
		},
		{
			name: "unknown",
			rec:  kvfile.Record{"ID": "plan9"},
			want: PlatformConstants{Distribution: "plan9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromOSRelease(tt.rec))
		})
	}
}

func TestGetPlatformConstantsFillsUnknown(t *testing.T) {
	c := GetPlatformConstants(t.TempDir())

	assert.NotEmpty(t, c.Architecture)
	for _, v := range []string{c.Family, c.Distribution, c.Release, c.PackageManager} {
		assert.NotEmpty(t, v)
	}
}

func TestFirstAvailable(t *testing.T) {
	onPath := map[string]bool{"scoop": true, "choco": true}
	available := func(s string) bool { return onPath[s] }

	assert.Equal(t, "scoop", firstAvailable(available, "winget", "scoop", "choco"))
	assert.Empty(t, firstAvailable(available, "brew"))
}
