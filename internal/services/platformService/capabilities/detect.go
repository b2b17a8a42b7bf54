// Package capabilities probes the host for optional helper binaries used by
// command backed readout sources.
package capabilities

import (
	"os/exec"
	"sync"
)

var (
	mu     sync.Mutex
	lookup = map[string]string{}
)

// Which returns the path to a binary, i.e. sw_vers -> /usr/bin/sw_vers.
// Successful lookups are cached for the life of the process.
func Which(binary string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if p, ok := lookup[binary]; ok {
		return p, nil
	}

	p, err := exec.LookPath(binary)
	if err != nil {
		return "", err
	}
	lookup[binary] = p
	return p, nil
}

// IsCommandAvailable reports whether binary is on PATH.
func IsCommandAvailable(binary string) bool {
	_, err := Which(binary)

	return err == nil
}
