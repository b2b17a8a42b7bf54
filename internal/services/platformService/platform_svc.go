// Package platformservice wires the readout capability interfaces to the
// data sources available on the platform the binary was built for.
package platformservice

import (
	"os"
	"runtime"
	"time"

	"github.com/redjax/sysreadout/internal/readout"
	packageservice "github.com/redjax/sysreadout/internal/services/packageService"
)

// Options configure the platform readouts.
type Options struct {
	// Root prefixes absolute paths read by file sources. Empty means "/".
	Root string
	// SampleWindow is the CPU usage sampling window.
	SampleWindow time.Duration
	// Packages controls package counting.
	Packages packageservice.Options
	// Observe sees every adapter attempt.
	Observe readout.Observer
}

// New returns the readouts for the current platform.
func New(opts Options) readout.Readouts {
	w := platformWiring(opts)
	w.SampleWindow = opts.SampleWindow
	w.Observe = opts.Observe

	if backends := packageservice.ForOS(runtime.GOOS, packageEnv(opts)); len(backends) > 0 {
		w.Packages = &packageservice.Readout{Backends: backends, Options: opts.Packages}
	}

	return readout.New(w)
}

// PackageBackends lists the package backends registered for this platform.
func PackageBackends(opts Options) []string {
	return packageservice.Names(packageservice.ForOS(runtime.GOOS, packageEnv(opts)))
}

func packageEnv(opts Options) packageservice.Env {
	home, _ := os.UserHomeDir()
	return packageservice.Env{Root: packageRoot(opts.Root), Home: home}
}
