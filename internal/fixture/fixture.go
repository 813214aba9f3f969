// Package fixture builds synthetic telemetry recordings for tests.
package fixture

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/irtelemetry/raw"
)

// Record is one record under construction. Put methods write little-endian values at a byte
// offset and return the record for chaining.
type Record []byte

// NewRecord returns a zeroed record of n bytes.
func NewRecord(n int) Record {
	return make(Record, n)
}

func (r Record) PutBool(off int, v bool) Record {
	r[off] = 0
	if v {
		r[off] = 1
	}

	return r
}

func (r Record) PutInt32(off int, v int32) Record {
	binary.LittleEndian.PutUint32(r[off:], uint32(v)) //nolint:gosec
	return r
}

func (r Record) PutUint32(off int, v uint32) Record {
	binary.LittleEndian.PutUint32(r[off:], v)
	return r
}

func (r Record) PutFloat32(off int, v float32) Record {
	binary.LittleEndian.PutUint32(r[off:], math.Float32bits(v))
	return r
}

func (r Record) PutFloat64(off int, v float64) Record {
	binary.LittleEndian.PutUint64(r[off:], math.Float64bits(v))
	return r
}

// Recording describes a complete .ibt file.
type Recording struct {
	TickRate    int32
	StartDate   int64
	StartTime   float64
	EndTime     float64
	LapCount    int32
	Vars        []raw.VarHeader
	SessionInfo string
	BufLen      int
	Records     []Record
}

// Layout returns the offsets Bytes places the regions at.
func (r *Recording) Layout() (varOffset, sessionOffset, recordOffset int) {
	varOffset = raw.HeaderSize + raw.SubHeaderSize
	sessionOffset = varOffset + len(r.Vars)*raw.VarHeaderSize
	recordOffset = alignUp(sessionOffset + len(Latin1(r.SessionInfo)) + 1)

	return varOffset, sessionOffset, recordOffset
}

// Header returns the raw header Bytes writes.
func (r *Recording) Header() raw.Header {
	varOffset, sessionOffset, recordOffset := r.Layout()

	return raw.Header{
		Version:           raw.Version,
		Status:            raw.StatusConnected,
		TickRate:          r.TickRate,
		SessionInfoUpdate: 0,
		SessionInfoLen:    int32(len(Latin1(r.SessionInfo)) + 1), //nolint:gosec
		SessionInfoOffset: int32(sessionOffset),          //nolint:gosec
		NumVars:           int32(len(r.Vars)),            //nolint:gosec
		VarHeaderOffset:   int32(varOffset),              //nolint:gosec
		NumBuf:            1,
		BufLen:            int32(r.BufLen), //nolint:gosec
		VarBufs:           [raw.MaxBufs]raw.VarBuf{{TickCount: 0, BufOffset: int32(recordOffset)}}, //nolint:gosec
	}
}

// Bytes encodes the recording. The session info is written NUL-terminated as Latin-1 bytes of
// its runes; records shorter than BufLen are zero padded.
func (r *Recording) Bytes() []byte {
	_, _, recordOffset := r.Layout()

	h := r.Header()
	sub := raw.DiskSubHeader{
		StartDate:   r.StartDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		LapCount:    r.LapCount,
		RecordCount: int32(len(r.Records)), //nolint:gosec
	}

	out := make([]byte, 0, recordOffset+len(r.Records)*r.BufLen)
	out = append(out, h.Bytes()...)
	out = append(out, sub.Bytes()...)
	out = append(out, raw.EncodeVarHeaders(r.Vars)...)
	out = append(out, Latin1(r.SessionInfo)...)
	out = append(out, make([]byte, recordOffset-len(out))...)

	for _, rec := range r.Records {
		buf := make([]byte, r.BufLen)
		copy(buf, rec)
		out = append(out, buf...)
	}

	return out
}

// Latin1 encodes s one byte per rune; runes above U+00FF become '?'.
func Latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		if c > 0xFF {
			c = '?'
		}
		out = append(out, byte(c))
	}

	return out
}

func alignUp(n int) int {
	return (n + raw.Alignment - 1) &^ (raw.Alignment - 1)
}
