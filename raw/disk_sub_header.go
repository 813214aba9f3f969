package raw

import (
	"math"

	"github.com/arloliu/irtelemetry/endian"
	"github.com/arloliu/irtelemetry/errs"
)

// DiskSubHeader follows the header in recorded files.
type DiskSubHeader struct {
	StartDate   int64   // byte offset 0-7, unix seconds
	StartTime   float64 // byte offset 8-15, session seconds at the first record
	EndTime     float64 // byte offset 16-23, session seconds at the last record
	LapCount    int32   // byte offset 24-27
	RecordCount int32   // byte offset 28-31
}

// Parse parses the disk sub-header from a byte slice of exactly 32 bytes.
func (s *DiskSubHeader) Parse(data []byte) error {
	if len(data) != SubHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	s.StartDate = int64(engine.Uint64(data[0:8])) //nolint:gosec
	s.StartTime = math.Float64frombits(engine.Uint64(data[8:16]))
	s.EndTime = math.Float64frombits(engine.Uint64(data[16:24]))
	s.LapCount = int32(engine.Uint32(data[24:28]))    //nolint:gosec
	s.RecordCount = int32(engine.Uint32(data[28:32])) //nolint:gosec

	return nil
}

// Bytes serializes the DiskSubHeader into a byte slice.
func (s *DiskSubHeader) Bytes() []byte {
	b := make([]byte, 0, SubHeaderSize)

	engine := endian.GetLittleEndianEngine()

	b = engine.AppendUint64(b, uint64(s.StartDate)) //nolint:gosec
	b = engine.AppendUint64(b, math.Float64bits(s.StartTime))
	b = engine.AppendUint64(b, math.Float64bits(s.EndTime))
	b = engine.AppendUint32(b, uint32(s.LapCount))    //nolint:gosec
	b = engine.AppendUint32(b, uint32(s.RecordCount)) //nolint:gosec

	return b
}

// ParseDiskSubHeader parses a DiskSubHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a disk sub-header (must be at least 32 bytes)
//
// Returns:
//   - DiskSubHeader: Parsed sub-header struct
//   - error: ErrInvalidHeaderSize if data is too short
func ParseDiskSubHeader(data []byte) (DiskSubHeader, error) {
	if len(data) < SubHeaderSize {
		return DiskSubHeader{}, errs.ErrInvalidHeaderSize
	}

	s := DiskSubHeader{}
	if err := s.Parse(data[:SubHeaderSize]); err != nil {
		return DiskSubHeader{}, err
	}

	return s, nil
}
