//go:build windows
// +build windows

package constants

import (
	"golang.org/x/sys/windows/registry"

	"github.com/redjax/sysreadout/internal/services/platformService/capabilities"
)

func platformConstants(string) PlatformConstants {
	return PlatformConstants{
		PackageManager: firstAvailable(capabilities.IsCommandAvailable, "winget", "scoop", "choco"),
		Family:         "windows",
		Distribution:   "windows",
		Release:        windowsRelease(),
	}
}

// windowsRelease reads DisplayVersion (e.g. "23H2"), falling back to the
// build number.
func windowsRelease() string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	for _, name := range []string{"DisplayVersion", "CurrentBuild"} {
		if v, _, err := k.GetStringValue(name); err == nil && v != "" {
			return v
		}
	}
	return ""
}
