package live

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/internal/hash"
	"github.com/arloliu/irtelemetry/internal/options"
	"github.com/arloliu/irtelemetry/raw"
	"github.com/arloliu/irtelemetry/telemetry"
)

// State is the connection state of a Client.
type State uint8

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}

	return "disconnected"
}

// Client polls the simulator's shared telemetry region.
type Client struct {
	cfg    *config
	logger *slog.Logger

	state  State
	src    Source
	header telemetry.Header

	vars        *telemetry.VarSet
	varsSum     uint64 // hash of the raw descriptor region vars was built from
	varsChanged bool
	lastTick    int
}

// NewClient creates a disconnected client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, logger: cfg.logger}, nil
}

// Connect creates a client and attaches it to the shared region.
func Connect(opts ...Option) (*Client, error) {
	c, err := NewClient(opts...)
	if err != nil {
		return nil, err
	}

	if err := c.Connect(); err != nil {
		return nil, err
	}

	return c, nil
}

// Connect attaches to the shared region, waits for one data signal and decodes the header and
// the variable catalog. It is a no-op on a connected client.
//
// Returns:
//   - error: errs.ErrDisconnected when the simulator is not running, errs.ErrTimeout when no
//     tick arrived within the timeout, a resource error when an OS handle failed, or a format
//     or conversion error from the header. Every acquired resource is released on failure.
func (c *Client) Connect() error {
	if c.state == Connected {
		return nil
	}

	src, err := c.cfg.opener()
	if err != nil {
		return err
	}
	c.src = src

	if err := c.attach(); err != nil {
		c.release()
		return err
	}

	c.state = Connected
	c.logger.Info("connected to simulator",
		slog.Uint64("tick_rate", uint64(c.header.TickRate)),
		slog.Int("num_vars", c.vars.Len()),
		slog.Int("buf_len", c.header.BufLen))

	return nil
}

func (c *Client) attach() error {
	if err := c.src.Wait(c.cfg.timeout); err != nil {
		return err
	}

	h, err := c.readHeader()
	if err != nil {
		return err
	}

	if _, err := c.loadVars(&h); err != nil {
		return err
	}
	c.header = h

	if slot := h.LatestBuf(); slot >= 0 {
		c.lastTick = h.VarBufs[slot].TickCount
	}

	return nil
}

// Poll waits for the next tick and returns a copy of the newest record.
//
// Returns:
//   - telemetry.Sample: Owned sample of BufLen bytes
//   - error: errs.ErrTimeout when no tick arrived (the client stays connected),
//     errs.ErrDisconnected when the client is not connected or the simulator stopped
//     (resources are released), a resource error when the signal failed, or a format or
//     conversion error from the header
func (c *Client) Poll() (telemetry.Sample, error) {
	return c.poll(nil)
}

// PollInto is Poll copying the record into buf instead of a new allocation. buf must hold at
// least BufLen bytes; the returned sample borrows buf[:BufLen]. A short buf fails with
// errs.ErrOutOfBounds and leaves the client state untouched, so the record can be polled again
// once buf has been grown to the new BufLen.
func (c *Client) PollInto(buf []byte) (telemetry.Sample, error) {
	if buf == nil {
		buf = []byte{}
	}

	return c.poll(buf)
}

func (c *Client) poll(dst []byte) (telemetry.Sample, error) {
	if c.state != Connected {
		return telemetry.Sample{}, errs.ErrDisconnected
	}
	c.varsChanged = false

	if err := c.src.Wait(c.cfg.timeout); err != nil {
		if !errors.Is(err, errs.ErrTimeout) {
			c.logger.Error("data signal failed", slog.Any("error", err))
			c.disconnect()
		}

		return telemetry.Sample{}, err
	}

	h, err := c.readHeader()
	if err != nil {
		if errors.Is(err, errs.ErrDisconnected) {
			c.disconnect()
		}

		return telemetry.Sample{}, err
	}

	if dst != nil && len(dst) < h.BufLen {
		return telemetry.Sample{}, fmt.Errorf("%w: buffer of %d bytes for a %d byte record",
			errs.ErrOutOfBounds, len(dst), h.BufLen)
	}

	slot := h.LatestBuf()
	if slot < 0 {
		return telemetry.Sample{}, fmt.Errorf("%w: header declares no buffer slot", errs.ErrFormat)
	}

	buf := h.VarBufs[slot]
	record, err := region(c.src.Bytes(), "record", buf.BufOffset, h.BufLen)
	if err != nil {
		return telemetry.Sample{}, err
	}

	// Copy the record out before the catalog is rebuilt; the slot may be recycled meanwhile.
	var sample telemetry.Sample
	if dst == nil {
		sample = telemetry.NewOwnedSample(record)
	} else {
		n := copy(dst, record)
		sample = telemetry.NewSample(dst[:n:n])
	}

	if h.SessionInfoUpdate != c.header.SessionInfoUpdate {
		changed, err := c.loadVars(&h)
		if err != nil {
			return telemetry.Sample{}, err
		}

		if changed {
			c.varsChanged = true
			c.logger.Info("variable catalog changed",
				slog.Uint64("session_info_update", uint64(h.SessionInfoUpdate)),
				slog.Int("num_vars", c.vars.Len()))
		}
	}

	if buf.TickCount < c.lastTick {
		c.logger.Debug("tick count went backwards",
			slog.Int("last_tick", c.lastTick), slog.Int("tick", buf.TickCount))
	}
	c.header = h
	c.lastTick = buf.TickCount

	return sample, nil
}

// readHeader copies the header out of the mapping and decodes it.
func (c *Client) readHeader() (telemetry.Header, error) {
	rawHeader, err := raw.ParseHeader(c.src.Bytes())
	if err != nil {
		return telemetry.Header{}, fmt.Errorf("failed to parse live header: %w", err)
	}

	if rawHeader.Status != raw.StatusConnected {
		return telemetry.Header{}, errs.ErrDisconnected
	}

	return telemetry.HeaderFromRaw(rawHeader)
}

// loadVars rebuilds the catalog when the raw descriptor region differs from the one the
// current catalog was built from. It reports whether the catalog was replaced.
func (c *Client) loadVars(h *telemetry.Header) (bool, error) {
	data, err := region(c.src.Bytes(), "variable headers", h.VarHeaderOffset, h.NumVars*raw.VarHeaderSize)
	if err != nil {
		return false, err
	}

	sum := hash.Bytes(data)
	if c.vars != nil && sum == c.varsSum {
		return false, nil
	}

	rawVars, err := raw.ParseVarHeaders(data, h.NumVars)
	if err != nil {
		return false, fmt.Errorf("failed to parse variable headers: %w", err)
	}

	vars := make([]telemetry.VarHeader, len(rawVars))
	for i := range rawVars {
		if vars[i], err = telemetry.VarHeaderFromRaw(rawVars[i]); err != nil {
			return false, fmt.Errorf("variable header %d: %w", i, err)
		}
	}

	c.vars = telemetry.NewVarSet(vars)
	c.varsSum = sum
	c.logger.Debug("built variable catalog",
		slog.Int("num_vars", c.vars.Len()),
		slog.String("fingerprint", fmt.Sprintf("%016x", c.vars.Fingerprint())))

	return true, nil
}

// Header returns the header decoded by the last successful Connect or Poll.
func (c *Client) Header() telemetry.Header {
	return c.header
}

// Vars returns the current variable catalog. It is nil before the first Connect.
func (c *Client) Vars() *telemetry.VarSet {
	return c.vars
}

// VarsChanged reports whether the last Poll replaced the variable catalog.
func (c *Client) VarsChanged() bool {
	return c.varsChanged
}

// BufLen returns the length of one record.
func (c *Client) BufLen() int {
	return c.header.BufLen
}

// LastTick returns the tick count of the last record read.
func (c *Client) LastTick() int {
	return c.lastTick
}

// State returns the connection state.
func (c *Client) State() State {
	return c.state
}

// SessionInfo copies the session info text out of the mapping, decoding it as Latin-1 with
// the trailing NUL padding removed.
func (c *Client) SessionInfo() (string, error) {
	if c.state != Connected {
		return "", errs.ErrDisconnected
	}

	info, err := region(c.src.Bytes(), "session info", c.header.SessionInfoOffset, c.header.SessionInfoLen)
	if err != nil {
		return "", err
	}

	return telemetry.DecodeLatin1(bytes.TrimRight(info, "\x00")), nil
}

// Close releases the shared region. The client can be connected again afterwards.
func (c *Client) Close() error {
	if c.src == nil {
		return nil
	}

	err := c.src.Close()
	c.src = nil
	c.state = Disconnected

	return err
}

func (c *Client) disconnect() {
	if c.state == Connected {
		c.logger.Info("disconnected from simulator", slog.Int("last_tick", c.lastTick))
	}
	c.release()
}

func (c *Client) release() {
	if err := c.Close(); err != nil {
		c.logger.Warn("failed to release shared region", slog.Any("error", err))
	}
}

func region(data []byte, name string, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(data) || n > len(data)-off {
		return nil, fmt.Errorf("%w: %s [%d, %d) of %d bytes", errs.ErrRegionOutOfRange, name, off, off+n, len(data))
	}

	return data[off : off+n : off+n], nil
}
