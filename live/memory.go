package live

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/raw"
)

// MemorySource is an in-process Source that plays the simulator's side of the shared region.
// It lays out a header, the descriptors, the session info and the record slots the same way
// the simulator does, and signals waiters on every Publish.
//
// Writers must not publish while a reader copies out of Bytes; tests and replays drive the
// source and the client from one goroutine, or publish only while the reader waits.
type MemorySource struct {
	mu   sync.Mutex
	cond *sync.Cond

	data        []byte
	header      raw.Header
	vars        []raw.VarHeader
	sessionInfo []byte
	records     [][]byte // latest record per slot, kept across relayouts

	seq       uint64 // signals raised
	seen      uint64 // signals consumed by Wait
	next      int    // slot Publish writes next
	closed    bool
	available bool
	opens     int
}

// NewMemorySource creates a running source with numBuf record slots of bufLen bytes.
func NewMemorySource(tickRate, numBuf, bufLen int, vars []raw.VarHeader, sessionInfo string) *MemorySource {
	numBuf = max(1, min(numBuf, raw.MaxBufs))

	m := &MemorySource{
		header: raw.Header{
			Version:  raw.Version,
			Status:   raw.StatusConnected,
			TickRate: int32(tickRate), //nolint:gosec
			NumBuf:   int32(numBuf),   //nolint:gosec
			BufLen:   int32(bufLen),   //nolint:gosec
		},
		vars:        vars,
		sessionInfo: latin1(sessionInfo),
		records:     make([][]byte, numBuf),
		available:   true,
		closed:      true,
	}
	m.cond = sync.NewCond(&m.mu)
	m.layout()

	return m
}

// Opener returns an Opener attaching to m. It fails with errs.ErrDisconnected while m is
// unavailable. A signal raised while detached is delivered to the next Wait.
func (m *MemorySource) Opener() Opener {
	return func() (Source, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if !m.available {
			return nil, errs.ErrDisconnected
		}

		m.closed = false
		m.opens++

		return m, nil
	}
}

// Bytes implements Source.
func (m *MemorySource) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.data
}

// Wait implements Source. A signal raised before Wait is called is consumed immediately.
func (m *MemorySource) Wait(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := false
	timer := time.AfterFunc(timeout, func() {
		m.mu.Lock()
		expired = true
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	defer timer.Stop()

	for {
		switch {
		case m.closed:
			return &errs.ResourceError{Op: "wait", Err: os.ErrClosed}
		case m.seq != m.seen:
			m.seen = m.seq
			return nil
		case expired:
			return errs.ErrTimeout
		}
		m.cond.Wait()
	}
}

// Close implements Source.
func (m *MemorySource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return &errs.ResourceError{Op: "close", Err: os.ErrClosed}
	}
	m.closed = true
	m.cond.Broadcast()

	return nil
}

// Closed reports whether no client holds the source.
func (m *MemorySource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// Opens returns how many times the source was attached.
func (m *MemorySource) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.opens
}

// SetAvailable makes the Opener succeed or fail with errs.ErrDisconnected, as if the
// simulator started or exited.
func (m *MemorySource) SetAvailable(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.available = ok
}

// SetStatus writes the header status word and raises the signal.
func (m *MemorySource) SetStatus(status int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.header.Status = status
	m.writeHeader()
	m.signal()
}

// SetVars replaces the descriptors and the record length and bumps the session info update
// counter. Existing record contents are truncated or zero padded to the new length.
func (m *MemorySource) SetVars(vars []raw.VarHeader, bufLen int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vars = vars
	m.header.BufLen = int32(bufLen) //nolint:gosec
	m.header.SessionInfoUpdate++
	m.layout()
}

// SetSessionInfo replaces the session info text and bumps the session info update counter.
func (m *MemorySource) SetSessionInfo(info string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessionInfo = latin1(info)
	m.header.SessionInfoUpdate++
	m.layout()
}

// SetSlot writes a record and its tick count into slot i without raising the signal.
func (m *MemorySource) SetSlot(i int, tick int32, record []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i < 0 || i >= len(m.records) {
		return errors.New("slot index out of range")
	}
	m.setSlot(i, tick, record)

	return nil
}

// Signal raises the data signal.
func (m *MemorySource) Signal() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.signal()
}

// Publish writes record into the next slot in rotation with the given tick count and raises
// the signal.
func (m *MemorySource) Publish(tick int32, record []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setSlot(m.next, tick, record)
	m.next = (m.next + 1) % len(m.records)
	m.signal()
}

func (m *MemorySource) setSlot(i int, tick int32, record []byte) {
	rec := make([]byte, m.header.BufLen)
	copy(rec, record)
	m.records[i] = rec

	m.header.VarBufs[i].TickCount = tick
	off := int(m.header.VarBufs[i].BufOffset)
	copy(m.data[off:off+len(rec)], rec)
	m.writeHeader()
}

func (m *MemorySource) signal() {
	m.seq++
	m.cond.Broadcast()
}

// layout rebuilds the region: header, descriptors at the first aligned offset, session info,
// then each slot at an aligned offset.
func (m *MemorySource) layout() {
	varOffset := alignUp(raw.HeaderSize)
	sessionOffset := varOffset + len(m.vars)*raw.VarHeaderSize
	sessionLen := alignUp(len(m.sessionInfo) + 1)
	bufLen := int(m.header.BufLen)
	slotOffset := alignUp(sessionOffset + sessionLen)

	m.header.NumVars = int32(len(m.vars))             //nolint:gosec
	m.header.VarHeaderOffset = int32(varOffset)       //nolint:gosec
	m.header.SessionInfoOffset = int32(sessionOffset) //nolint:gosec
	m.header.SessionInfoLen = int32(sessionLen)       //nolint:gosec

	size := slotOffset + len(m.records)*alignUp(bufLen)
	data := make([]byte, size)
	copy(data[varOffset:], raw.EncodeVarHeaders(m.vars))
	copy(data[sessionOffset:], m.sessionInfo)

	for i := range m.records {
		off := slotOffset + i*alignUp(bufLen)
		m.header.VarBufs[i].BufOffset = int32(off) //nolint:gosec
		if rec := m.records[i]; rec != nil {
			copy(data[off:off+bufLen], rec)
		}
	}

	m.data = data
	m.writeHeader()
}

func (m *MemorySource) writeHeader() {
	copy(m.data, m.header.Bytes())
}

func alignUp(n int) int {
	return (n + raw.Alignment - 1) &^ (raw.Alignment - 1)
}

func latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		if c > 0xFF {
			c = '?'
		}
		out = append(out, byte(c))
	}

	return out
}
