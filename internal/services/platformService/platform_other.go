//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package platformservice

import "github.com/redjax/sysreadout/internal/readout"

func packageRoot(root string) string { return root }

// platformWiring on the BSDs and other unix systems relies on the sources
// gopsutil and the standard library provide.
func platformWiring(opts Options) readout.Wiring {
	w := commonWiring()
	w.General.Distribution = w.General.OSName
	return w
}
