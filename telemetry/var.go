package telemetry

import (
	"bytes"
	"strings"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/raw"
)

// VarType is the element type of a telemetry variable.
type VarType uint8

const (
	TypeChar     VarType = 0 // 1 byte Latin-1 character
	TypeBool     VarType = 1 // 1 byte, non-zero is true
	TypeInt      VarType = 2 // int32
	TypeBitfield VarType = 3 // uint32 bit set
	TypeFloat    VarType = 4 // float32
	TypeDouble   VarType = 5 // float64
)

// ParseVarType converts a raw type tag. The set of element types is closed.
func ParseVarType(tag int32) (VarType, bool) {
	if tag < int32(TypeChar) || tag > int32(TypeDouble) {
		return 0, false
	}

	return VarType(tag), true
}

// Size returns the size in bytes of one element.
func (t VarType) Size() int {
	switch t {
	case TypeChar, TypeBool:
		return 1
	case TypeInt, TypeBitfield, TypeFloat:
		return 4
	case TypeDouble:
		return 8
	default:
		return 0
	}
}

// String returns the string representation of the variable type.
func (t VarType) String() string {
	switch t {
	case TypeChar:
		return "char"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeBitfield:
		return "bitfield"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	default:
		return "unknown"
	}
}

// VarHeader describes one variable: its element type, where it lives inside a record and how
// it is labelled.
type VarHeader struct {
	Type        VarType
	Offset      int // byte offset from the start of a record
	Count       int // number of elements, >1 for arrays
	CountAsTime bool

	Name        string
	Description string
	Unit        string
}

// Size returns the number of bytes the variable occupies inside a record.
func (v *VarHeader) Size() int {
	return v.Type.Size() * v.Count
}

// IsArray reports whether the variable holds more than one element.
func (v *VarHeader) IsArray() bool {
	return v.Count > 1
}

// VarHeaderFromRaw validates and converts a raw descriptor.
//
// Parameters:
//   - r: Decoded raw descriptor
//
// Returns:
//   - VarHeader: Converted descriptor with Latin-1 strings decoded
//   - error: *errs.ConversionError for an unknown type tag, a negative offset or count, or a
//     string buffer without a NUL terminator
func VarHeaderFromRaw(r raw.VarHeader) (VarHeader, error) {
	typ, ok := ParseVarType(r.Type)
	if !ok {
		return VarHeader{}, &errs.ConversionError{Struct: "VarHeader", Field: "type", Value: int64(r.Type)}
	}

	offset, err := toSize("VarHeader", "offset", r.Offset)
	if err != nil {
		return VarHeader{}, err
	}

	count, err := toSize("VarHeader", "count", r.Count)
	if err != nil {
		return VarHeader{}, err
	}

	name, err := cString("name", r.Name[:])
	if err != nil {
		return VarHeader{}, err
	}

	desc, err := cString("desc", r.Desc[:])
	if err != nil {
		return VarHeader{}, err
	}

	unit, err := cString("unit", r.Unit[:])
	if err != nil {
		return VarHeader{}, err
	}

	return VarHeader{
		Type:        typ,
		Offset:      offset,
		Count:       count,
		CountAsTime: r.CountAsTime != 0,
		Name:        name,
		Description: desc,
		Unit:        unit,
	}, nil
}

func cString(field string, buf []byte) (string, error) {
	end := bytes.IndexByte(buf, 0)
	if end < 0 {
		return "", &errs.ConversionError{Struct: "VarHeader", Field: field, Reason: "missing NUL terminator"}
	}

	return DecodeLatin1(buf[:end]), nil
}

// DecodeLatin1 decodes ISO-8859-1 bytes. Every byte is the Unicode code point of the same value.
func DecodeLatin1(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(rune(c))
	}

	return sb.String()
}
