//go:build darwin
// +build darwin

package constants

import (
	"os/exec"
	"strings"

	"github.com/redjax/sysreadout/internal/services/platformService/capabilities"
)

// platformConstants returns macOS platform constants including detected package manager.
func platformConstants(string) PlatformConstants {
	return PlatformConstants{
		PackageManager: firstAvailable(capabilities.IsCommandAvailable, "brew", "port"),
		Family:         "darwin",
		Distribution:   "macos",
		Release:        darwinRelease(),
	}
}

// darwinRelease returns macOS version string, e.g. "14.4".
func darwinRelease() string {
	out, err := exec.Command("sw_vers", "-productVersion").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
