package telemetry

import (
	"fmt"
	"strconv"
)

// Value is a typed value read from a sample. It is one of Char, Bool, Int, BitfieldValue,
// Float, Double, EnumValue, BoolArray, IntArray or FloatArray.
type Value interface {
	fmt.Stringer
	// Type returns the element type the value was read as.
	Type() VarType
	// Any returns the value as a plain Go value, suitable for encoding.
	Any() any

	isValue()
}

// Char is a single Latin-1 character.
type Char rune

// Bool is a boolean.
type Bool bool

// Int is a signed 32-bit integer.
type Int int32

// Float is a 32-bit float.
type Float float32

// Double is a 64-bit float.
type Double float64

// BitfieldValue wraps a decoded bitfield.
type BitfieldValue struct {
	Bitfield
}

// EnumValue wraps a decoded enumeration.
type EnumValue struct {
	Enum
}

// BoolArray is an array of booleans.
type BoolArray []bool

// IntArray is an array of signed 32-bit integers.
type IntArray []int32

// FloatArray is an array of 32-bit floats.
type FloatArray []float32

func (Char) isValue()          {}
func (Bool) isValue()          {}
func (Int) isValue()           {}
func (Float) isValue()         {}
func (Double) isValue()        {}
func (BitfieldValue) isValue() {}
func (EnumValue) isValue()     {}
func (BoolArray) isValue()     {}
func (IntArray) isValue()      {}
func (FloatArray) isValue()    {}

func (Char) Type() VarType          { return TypeChar }
func (Bool) Type() VarType          { return TypeBool }
func (Int) Type() VarType           { return TypeInt }
func (Float) Type() VarType         { return TypeFloat }
func (Double) Type() VarType        { return TypeDouble }
func (BitfieldValue) Type() VarType { return TypeBitfield }
func (EnumValue) Type() VarType     { return TypeInt }
func (BoolArray) Type() VarType     { return TypeBool }
func (IntArray) Type() VarType      { return TypeInt }
func (FloatArray) Type() VarType    { return TypeFloat }

func (v Char) Any() any          { return string(rune(v)) }
func (v Bool) Any() any          { return bool(v) }
func (v Int) Any() any           { return int32(v) }
func (v Float) Any() any         { return float32(v) }
func (v Double) Any() any        { return float64(v) }
func (v BitfieldValue) Any() any { return v.SetFlags() }
func (v EnumValue) Any() any     { return v.Enum.String() }
func (v BoolArray) Any() any     { return []bool(v) }
func (v IntArray) Any() any      { return []int32(v) }
func (v FloatArray) Any() any    { return []float32(v) }

func (v Char) String() string   { return string(rune(v)) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Double) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

func (v BitfieldValue) String() string {
	return fmt.Sprintf("%s%v", unitPrefix(v.Unit()), v.SetFlags())
}

func (v EnumValue) String() string {
	return unitPrefix(v.Unit()) + v.Enum.String()
}

func (v BoolArray) String() string  { return fmt.Sprint([]bool(v)) }
func (v IntArray) String() string   { return fmt.Sprint([]int32(v)) }
func (v FloatArray) String() string { return fmt.Sprint([]float32(v)) }

func unitPrefix(unit string) string {
	if unit == "" {
		return ""
	}

	return unit + ":"
}
