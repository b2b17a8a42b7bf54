// Package constants derives the platform family, distribution, release and
// native package manager of the running system.
package constants

import (
	"runtime"
	"strings"

	"github.com/redjax/sysreadout/internal/utils/kvfile"
)

// Unknown marks a constant that could not be determined.
const Unknown = "unknown"

// PlatformConstants holds platform-specific constant values.
type PlatformConstants struct {
	// e.g. "debian", "redhat", "darwin"
	Family string `json:"family"`
	// e.g. "ubuntu", "fedora", "macos"
	Distribution string `json:"distribution"`
	// e.g. "24.04", "42", "14.4"
	Release string `json:"release"`
	// e.g. "apt", "dnf", "brew"
	PackageManager string `json:"package_manager"`
	Architecture   string `json:"architecture"`
}

// GetPlatformConstants returns the constants of the running system. root
// prefixes descriptor files such as /etc/os-release.
func GetPlatformConstants(root string) PlatformConstants {
	c := platformConstants(root)
	c.Architecture = runtime.GOARCH

	for _, f := range []*string{&c.Family, &c.Distribution, &c.Release, &c.PackageManager} {
		if *f == "" {
			*f = Unknown
		}
	}
	return c
}

type family struct {
	name           string
	packageManager string
}

var (
	debianFamily = family{"debian", "apt"}
	redhatFamily = family{"redhat", "dnf"}
	suseFamily   = family{"suse", "zypper"}
	archFamily   = family{"arch", "pacman"}
)

// distributions maps os-release IDs to their family.
var distributions = map[string]family{
	"debian":              debianFamily,
	"ubuntu":              debianFamily,
	"linuxmint":           debianFamily,
	"pop":                 debianFamily,
	"raspbian":            debianFamily,
	"fedora":              redhatFamily,
	"rhel":                redhatFamily,
	"centos":              redhatFamily,
	"rocky":               redhatFamily,
	"almalinux":           redhatFamily,
	"opensuse":            suseFamily,
	"opensuse-leap":       suseFamily,
	"opensuse-tumbleweed": suseFamily,
	"sles":                suseFamily,
	"arch":                archFamily,
	"manjaro":             archFamily,
	"endeavouros":         archFamily,
	"alpine":              {"alpine", "apk"},
	"gentoo":              {"gentoo", "emerge"},
	"void":                {"void", "xbps"},
	"nixos":               {"nixos", "nix"},
}

// likeFamilies is consulted in order for IDs not listed in distributions.
var likeFamilies = []struct {
	like   string
	family family
}{
	{"debian", debianFamily},
	{"ubuntu", debianFamily},
	{"rhel", redhatFamily},
	{"fedora", redhatFamily},
	{"centos", redhatFamily},
	{"suse", suseFamily},
	{"arch", archFamily},
}

// FromOSRelease maps an os-release record to constants. Unknown IDs fall
// back to the first ID_LIKE entry with a known family.
func FromOSRelease(rec kvfile.Record) PlatformConstants {
	id := strings.ToLower(rec.Value("ID"))
	c := PlatformConstants{
		Distribution: id,
		Release:      rec.Value("VERSION_ID"),
	}

	if f, ok := distributions[id]; ok {
		c.Family, c.PackageManager = f.name, f.packageManager
		return c
	}

	for _, like := range strings.Fields(strings.ToLower(rec.Value("ID_LIKE"))) {
		if f, ok := distributions[like]; ok {
			c.Family, c.PackageManager = f.name, f.packageManager
			return c
		}
		for _, lf := range likeFamilies {
			if strings.Contains(like, lf.like) {
				c.Family, c.PackageManager = lf.family.name, lf.family.packageManager
				return c
			}
		}
	}
	return c
}

// firstAvailable returns the first binary in candidates that is on PATH.
func firstAvailable(available func(string) bool, candidates ...string) string {
	for _, c := range candidates {
		if available(c) {
			return c
		}
	}
	return ""
}
