//go:build linux
// +build linux

package constants

import (
	"path/filepath"

	"github.com/redjax/sysreadout/internal/utils/kvfile"
)

// platformConstants reads /etc/os-release, falling back to /usr/lib/os-release.
func platformConstants(root string) PlatformConstants {
	if root == "" {
		root = "/"
	}

	for _, p := range []string{
		filepath.Join(root, "etc", "os-release"),
		filepath.Join(root, "usr", "lib", "os-release"),
	} {
		res, err := kvfile.ParseFile(p)
		if err != nil {
			continue
		}
		return FromOSRelease(res.Record)
	}

	return PlatformConstants{Family: "linux"}
}
