package raw

import (
	"fmt"

	"github.com/arloliu/irtelemetry/endian"
	"github.com/arloliu/irtelemetry/errs"
)

// VarHeader describes one telemetry variable: where it lives inside a record and how to read it.
type VarHeader struct {
	Type        int32 // byte offset 0-3
	Offset      int32 // byte offset 4-7, from the start of a record
	Count       int32 // byte offset 8-11, element count, >1 for arrays
	CountAsTime int8  // byte offset 12
	// 3 bytes padding

	Name [MaxString]byte // byte offset 16-47
	Desc [MaxDesc]byte   // byte offset 48-111
	Unit [MaxString]byte // byte offset 112-143
}

// NewVarHeader builds a descriptor with the given fields. Strings are stored as Latin-1 and
// truncated so that every buffer keeps its NUL terminator; runes outside Latin-1 become '?'.
func NewVarHeader(typ, offset, count int32, countAsTime bool, name, desc, unit string) VarHeader {
	v := VarHeader{Type: typ, Offset: offset, Count: count}
	if countAsTime {
		v.CountAsTime = 1
	}

	putString(v.Name[:], name)
	putString(v.Desc[:], desc)
	putString(v.Unit[:], unit)

	return v
}

func putString(dst []byte, s string) {
	n := 0
	for _, r := range s {
		if n == len(dst)-1 {
			break
		}
		if r > 0xFF {
			r = '?'
		}
		dst[n] = byte(r)
		n++
	}
}

// Parse parses the descriptor from a byte slice of exactly 144 bytes.
func (v *VarHeader) Parse(data []byte) error {
	if len(data) != VarHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	v.Type = int32(engine.Uint32(data[0:4]))   //nolint:gosec
	v.Offset = int32(engine.Uint32(data[4:8])) //nolint:gosec
	v.Count = int32(engine.Uint32(data[8:12])) //nolint:gosec
	v.CountAsTime = int8(data[12])             //nolint:gosec
	copy(v.Name[:], data[varNameOffset:varDescOffset])
	copy(v.Desc[:], data[varDescOffset:varUnitOffset])
	copy(v.Unit[:], data[varUnitOffset:VarHeaderSize])

	return nil
}

// Bytes serializes the VarHeader into a byte slice.
func (v *VarHeader) Bytes() []byte {
	b := make([]byte, VarHeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], uint32(v.Type))   //nolint:gosec
	engine.PutUint32(b[4:8], uint32(v.Offset)) //nolint:gosec
	engine.PutUint32(b[8:12], uint32(v.Count)) //nolint:gosec
	b[12] = byte(v.CountAsTime)
	copy(b[varNameOffset:varDescOffset], v.Name[:])
	copy(b[varDescOffset:varUnitOffset], v.Desc[:])
	copy(b[varUnitOffset:VarHeaderSize], v.Unit[:])

	return b
}

// ParseVarHeaders parses n consecutive descriptors from the start of data.
//
// Parameters:
//   - data: Byte slice starting at the variable header region
//   - n: Number of descriptors, usually Header.NumVars
//
// Returns:
//   - []VarHeader: Parsed descriptors in storage order
//   - error: ErrInvalidHeaderSize if data holds fewer than n descriptors
func ParseVarHeaders(data []byte, n int) ([]VarHeader, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative descriptor count %d", errs.ErrInvalidHeaderSize, n)
	}

	if len(data)/VarHeaderSize < n {
		return nil, fmt.Errorf("%w: %d descriptors need %d bytes, got %d",
			errs.ErrInvalidHeaderSize, n, n*VarHeaderSize, len(data))
	}

	vars := make([]VarHeader, n)
	for i := range vars {
		off := i * VarHeaderSize
		if err := vars[i].Parse(data[off : off+VarHeaderSize]); err != nil {
			return nil, err
		}
	}

	return vars, nil
}

// EncodeVarHeaders serializes descriptors back to back, the inverse of ParseVarHeaders.
func EncodeVarHeaders(vars []VarHeader) []byte {
	b := make([]byte, 0, len(vars)*VarHeaderSize)
	for i := range vars {
		b = append(b, vars[i].Bytes()...)
	}

	return b
}
