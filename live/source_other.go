//go:build !linux && !windows

package live

import "github.com/arloliu/irtelemetry/errs"

// OpenSystem always fails: the simulator's shared region is only reachable on Windows and
// through the Linux /dev/shm bridge.
func OpenSystem() (Source, error) {
	return nil, errs.ErrUnsupportedPlatform
}
