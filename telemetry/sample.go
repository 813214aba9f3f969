package telemetry

import (
	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/internal/aligned"
)

// Sample is the raw data of one tick. A sample either borrows its bytes from a larger buffer,
// such as a loaded file, or owns a private copy, as handed out by the live client.
//
// Sample is a small value type and is cheap to copy.
type Sample struct {
	data  []byte
	owned bool
}

// NewSample returns a sample that borrows data. The caller must keep data unchanged while the
// sample is in use.
func NewSample(data []byte) Sample {
	return Sample{data: data}
}

// NewOwnedSample returns a sample holding a private copy of data.
func NewOwnedSample(data []byte) Sample {
	return Sample{data: append([]byte(nil), data...), owned: true}
}

// Bytes returns the sample data. It must not be modified.
func (s Sample) Bytes() []byte {
	return s.data
}

// Len returns the sample length in bytes.
func (s Sample) Len() int {
	return len(s.data)
}

// Owned reports whether the sample holds a private copy of its data.
func (s Sample) Owned() bool {
	return s.owned
}

// Read extracts the value of v from the sample.
//
// Decoding follows the descriptor:
//   - a single 4-byte element whose unit is an enumeration unit yields EnumValue;
//   - arrays of bool, int or float yield BoolArray, IntArray or FloatArray with exactly
//     v.Count elements; arrays of any other element type are rejected;
//   - otherwise the scalar of v.Type is returned, and bitfields are decoded by unit.
//
// Parameters:
//   - v: Variable descriptor, usually from the VarSet the sample belongs to
//
// Returns:
//   - Value: Decoded value
//   - error: *errs.BoundsError if the variable does not fit in the sample,
//     *errs.UnsupportedArrayError for arrays of char, bitfield or double
func (s Sample) Read(v *VarHeader) (Value, error) {
	elemSize := v.Type.Size()
	// Count is compared by division so a huge hand-built count cannot wrap the product.
	if v.Offset < 0 || v.Count < 0 || v.Offset > len(s.data) ||
		(elemSize > 0 && v.Count > (len(s.data)-v.Offset)/elemSize) {
		return nil, &errs.BoundsError{Var: v.Name, Offset: v.Offset, Size: elemSize * v.Count, Len: len(s.data)}
	}
	size := elemSize * v.Count

	data := s.data[v.Offset : v.Offset+size]

	if v.Count == 1 && elemSize == 4 {
		if e, ok := EnumFor(v.Unit, aligned.Cast[int32](data)); ok {
			return EnumValue{e}, nil
		}
	}

	if v.Count > 1 {
		switch v.Type {
		case TypeBool:
			arr := make(BoolArray, v.Count)
			for i, b := range data {
				arr[i] = b != 0
			}

			return arr, nil
		case TypeInt:
			return IntArray(aligned.Slice[int32](data)), nil
		case TypeFloat:
			return FloatArray(aligned.Slice[float32](data)), nil
		default:
			return nil, &errs.UnsupportedArrayError{Var: v.Name, Type: v.Type.String()}
		}
	}

	// A zero-count variable has no element to read; it decodes as the zero value.
	if v.Count == 0 {
		data = make([]byte, elemSize)
	}

	switch v.Type {
	case TypeChar:
		return Char(data[0]), nil
	case TypeBool:
		return Bool(data[0] != 0), nil
	case TypeInt:
		return Int(aligned.Cast[int32](data)), nil
	case TypeBitfield:
		return BitfieldValue{BitfieldFor(v.Unit, aligned.Cast[uint32](data))}, nil
	case TypeFloat:
		return Float(aligned.Cast[float32](data)), nil
	case TypeDouble:
		return Double(aligned.Cast[float64](data)), nil
	default:
		return nil, &errs.ConversionError{Struct: "VarHeader", Field: "type", Value: int64(v.Type)}
	}
}

// ReadByName looks name up in vars and reads it. The second result is false when vars has no
// such variable.
func (s Sample) ReadByName(vars *VarSet, name string) (Value, bool, error) {
	v, ok := vars.Var(name)
	if !ok {
		return nil, false, nil
	}

	value, err := s.Read(v)

	return value, true, err
}
