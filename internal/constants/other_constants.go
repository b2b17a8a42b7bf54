//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package constants

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/redjax/sysreadout/internal/services/platformService/capabilities"
)

func platformConstants(string) PlatformConstants {
	c := PlatformConstants{
		Family:         "bsd",
		Distribution:   runtime.GOOS,
		PackageManager: firstAvailable(capabilities.IsCommandAvailable, "pkg", "pkg_add", "pkgin"),
	}

	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		c.Release = unix.ByteSliceToString(u.Release[:])
	}
	return c
}
