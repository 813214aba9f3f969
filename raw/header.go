package raw

import (
	"github.com/arloliu/irtelemetry/endian"
	"github.com/arloliu/irtelemetry/errs"
)

// VarBuf is one rotating buffer slot of the header.
type VarBuf struct {
	// TickCount is the simulation tick the buffer was last written at.
	TickCount int32 // byte offset 0-3
	// BufOffset is the byte offset of the buffer from the start of the file or mapping.
	BufOffset int32 // byte offset 4-7
	// 8 bytes padding
}

// Header represents the fixed-size header at the start of a telemetry file or mapping.
type Header struct {
	Version           int32 // byte offset 0-3
	Status            int32 // byte offset 4-7, live only: 1 while connected
	TickRate          int32 // byte offset 8-11, ticks per second
	SessionInfoUpdate int32 // byte offset 12-15, incremented when session info changes
	SessionInfoLen    int32 // byte offset 16-19
	SessionInfoOffset int32 // byte offset 20-23
	NumVars           int32 // byte offset 24-27
	VarHeaderOffset   int32 // byte offset 28-31
	NumBuf            int32 // byte offset 32-35
	BufLen            int32 // byte offset 36-39
	// 8 bytes padding

	VarBufs [MaxBufs]VarBuf // byte offset 48-111
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 112 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 112 bytes, *errs.VersionError if the version
//     tag is not 2
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	fields := [...]*int32{
		&h.Version, &h.Status, &h.TickRate, &h.SessionInfoUpdate, &h.SessionInfoLen,
		&h.SessionInfoOffset, &h.NumVars, &h.VarHeaderOffset, &h.NumBuf, &h.BufLen,
	}
	for i, f := range fields {
		*f = int32(engine.Uint32(data[i*4 : i*4+4])) //nolint:gosec
	}

	for i := range h.VarBufs {
		off := varBufsOffset + i*VarBufSize
		h.VarBufs[i].TickCount = int32(engine.Uint32(data[off : off+4]))    //nolint:gosec
		h.VarBufs[i].BufOffset = int32(engine.Uint32(data[off+4 : off+8])) //nolint:gosec
	}

	if h.Version != Version {
		return &errs.VersionError{Got: h.Version}
	}

	return nil
}

// Bytes serializes the Header into a byte slice. Padding bytes are zero.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()

	fields := [...]int32{
		h.Version, h.Status, h.TickRate, h.SessionInfoUpdate, h.SessionInfoLen,
		h.SessionInfoOffset, h.NumVars, h.VarHeaderOffset, h.NumBuf, h.BufLen,
	}
	for i, f := range fields {
		engine.PutUint32(b[i*4:i*4+4], uint32(f)) //nolint:gosec
	}

	for i, vb := range h.VarBufs {
		off := varBufsOffset + i*VarBufSize
		engine.PutUint32(b[off:off+4], uint32(vb.TickCount))   //nolint:gosec
		engine.PutUint32(b[off+4:off+8], uint32(vb.BufOffset)) //nolint:gosec
	}

	return b
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 112 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or *errs.VersionError
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
