package live

import "time"

// Names of the simulator's shared objects.
const (
	MemMapFileName     = `Local\IRSDKMemMapFileName`
	DataValidEventName = `Local\IRSDKDataValidEvent`
)

// Source is an attached shared telemetry region together with its data signal.
type Source interface {
	// Bytes returns the whole mapped region. The slice aliases memory the writer updates, so
	// callers copy what they need right after a successful Wait.
	Bytes() []byte
	// Wait blocks until the writer signals a new tick or timeout elapses. It returns
	// errs.ErrTimeout when nothing arrived and a resource error when the signal is broken.
	// The signal is consumed by the waiter that observes it.
	Wait(timeout time.Duration) error
	// Close releases the mapping and the signal.
	Close() error
}

// Opener attaches a Source. It returns errs.ErrDisconnected when the simulator is not running.
type Opener func() (Source, error)
