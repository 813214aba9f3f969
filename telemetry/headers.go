package telemetry

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/raw"
)

// Header is the validated form of raw.Header.
type Header struct {
	// Connected reports the status field; only meaningful for the live feed.
	Connected bool
	// TickRate is the number of ticks per second.
	TickRate uint32
	// SessionInfoUpdate is incremented every time the session info changes.
	SessionInfoUpdate uint32
	// SessionInfoLen is the length in bytes of the session info string.
	SessionInfoLen int
	// SessionInfoOffset is the byte offset of the session info string, encoded in YAML.
	SessionInfoOffset int
	// NumVars is the number of variable descriptors.
	NumVars int
	// VarHeaderOffset is the byte offset of the first variable descriptor.
	VarHeaderOffset int
	// BufLen is the length in bytes of one record.
	BufLen int
	// VarBufs holds the first NumBuf buffer slots.
	VarBufs []VarBufInfo
}

// VarBufInfo is the validated form of raw.VarBuf.
type VarBufInfo struct {
	TickCount int
	BufOffset int
}

// DiskSubHeader is the validated form of raw.DiskSubHeader.
type DiskSubHeader struct {
	// Date is the start of the session in UTC, with second precision.
	Date time.Time
	// StartTime is how long into the session the recording started.
	StartTime time.Duration
	// EndTime is how long into the session the recording ended.
	EndTime time.Duration
	// LapCount is the number of laps run in the session.
	LapCount uint32
	// RecordCount is the number of records in the file.
	RecordCount int
}

// HeaderFromRaw validates and converts a raw header.
//
// Parameters:
//   - r: Decoded raw header
//
// Returns:
//   - Header: Converted header
//   - error: *errs.ConversionError naming the first field that is negative, or a buffer count
//     outside [0, raw.MaxBufs]
func HeaderFromRaw(r raw.Header) (Header, error) {
	h := Header{Connected: r.Status == raw.StatusConnected}

	var err error
	if h.TickRate, err = toUint32("Header", "tick_rate", r.TickRate); err != nil {
		return Header{}, err
	}
	if h.SessionInfoUpdate, err = toUint32("Header", "session_info_update", r.SessionInfoUpdate); err != nil {
		return Header{}, err
	}
	if h.SessionInfoLen, err = toSize("Header", "session_info_len", r.SessionInfoLen); err != nil {
		return Header{}, err
	}
	if h.SessionInfoOffset, err = toSize("Header", "session_info_offset", r.SessionInfoOffset); err != nil {
		return Header{}, err
	}
	if h.NumVars, err = toSize("Header", "num_vars", r.NumVars); err != nil {
		return Header{}, err
	}
	if h.VarHeaderOffset, err = toSize("Header", "var_header_offset", r.VarHeaderOffset); err != nil {
		return Header{}, err
	}
	if h.BufLen, err = toSize("Header", "buf_len", r.BufLen); err != nil {
		return Header{}, err
	}

	if r.NumBuf < 0 || r.NumBuf > raw.MaxBufs {
		return Header{}, &errs.ConversionError{Struct: "Header", Field: "num_buf", Value: int64(r.NumBuf)}
	}

	h.VarBufs = make([]VarBufInfo, r.NumBuf)
	for i := range h.VarBufs {
		if h.VarBufs[i], err = VarBufInfoFromRaw(r.VarBufs[i]); err != nil {
			return Header{}, err
		}
	}

	return h, nil
}

// VarBufInfoFromRaw validates and converts one buffer slot.
func VarBufInfoFromRaw(r raw.VarBuf) (VarBufInfo, error) {
	tick, err := toSize("VarBuf", "tick_count", r.TickCount)
	if err != nil {
		return VarBufInfo{}, err
	}

	offset, err := toSize("VarBuf", "buf_offset", r.BufOffset)
	if err != nil {
		return VarBufInfo{}, err
	}

	return VarBufInfo{TickCount: tick, BufOffset: offset}, nil
}

// LatestBuf returns the index of the slot with the strictly greatest tick count. When several
// slots share the greatest count the first one wins. It returns -1 when there are no slots.
func (h *Header) LatestBuf() int {
	latest := -1
	for i, vb := range h.VarBufs {
		if latest < 0 || vb.TickCount > h.VarBufs[latest].TickCount {
			latest = i
		}
	}

	return latest
}

// DiskSubHeaderFromRaw validates and converts a raw disk sub-header.
//
// Parameters:
//   - r: Decoded raw disk sub-header
//
// Returns:
//   - DiskSubHeader: Converted sub-header
//   - error: *errs.ConversionError for a negative date or count, or a start/end time that is
//     not a finite, non-negative, representable duration
func DiskSubHeaderFromRaw(r raw.DiskSubHeader) (DiskSubHeader, error) {
	if r.StartDate < 0 {
		return DiskSubHeader{}, &errs.ConversionError{Struct: "DiskSubHeader", Field: "start_date", Value: r.StartDate}
	}

	start, err := toDuration("start_time", r.StartTime)
	if err != nil {
		return DiskSubHeader{}, err
	}

	end, err := toDuration("end_time", r.EndTime)
	if err != nil {
		return DiskSubHeader{}, err
	}

	laps, err := toUint32("DiskSubHeader", "lap_count", r.LapCount)
	if err != nil {
		return DiskSubHeader{}, err
	}

	records, err := toSize("DiskSubHeader", "record_count", r.RecordCount)
	if err != nil {
		return DiskSubHeader{}, err
	}

	return DiskSubHeader{
		Date:        time.Unix(r.StartDate, 0).UTC(),
		StartTime:   start,
		EndTime:     end,
		LapCount:    laps,
		RecordCount: records,
	}, nil
}

func toSize(structName, field string, v int32) (int, error) {
	if v < 0 {
		return 0, &errs.ConversionError{Struct: structName, Field: field, Value: int64(v)}
	}

	return int(v), nil
}

func toUint32(structName, field string, v int32) (uint32, error) {
	if v < 0 {
		return 0, &errs.ConversionError{Struct: structName, Field: field, Value: int64(v)}
	}

	return uint32(v), nil
}

// maxSeconds is the largest number of seconds a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

func toDuration(field string, secs float64) (time.Duration, error) {
	if math.IsNaN(secs) || secs < 0 || secs > maxSeconds {
		return 0, &errs.ConversionError{
			Struct: "DiskSubHeader",
			Field:  field,
			Reason: fmt.Sprintf("%g is not a valid duration in seconds", secs),
		}
	}

	return time.Duration(secs * float64(time.Second)), nil
}
