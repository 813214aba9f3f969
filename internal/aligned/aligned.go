// Package aligned reinterprets arbitrarily aligned telemetry bytes as numeric values.
//
// A variable inside a sample can start at any byte offset, so its bytes carry no alignment
// guarantee. Cast never reads the source in place: it copies into a scratch value of the
// target type, which Go lays out with the type's natural alignment, and returns that value.
//
// Buffer allocates the 16-byte aligned storage a whole recording is loaded into.
package aligned

import (
	"unsafe"

	"github.com/arloliu/irtelemetry/endian"
)

// Numeric lists the fixed-size types stored in telemetry records and headers.
type Numeric interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// Buffer returns a zeroed slice of length n whose first byte sits on an align-byte boundary.
// align must be a power of two.
func Buffer(n, align int) []byte {
	if align <= 1 {
		return make([]byte, n)
	}

	raw := make([]byte, n+align-1)
	shift := 0
	if rem := int(uintptr(unsafe.Pointer(unsafe.SliceData(raw))) & uintptr(align-1)); rem != 0 {
		shift = align - rem
	}

	return raw[shift : shift+n : shift+n]
}

// Cast copies data into an aligned scratch value and reinterprets it as T.
//
// data holds one little-endian encoded T. Its length is asserted, not discovered: Cast panics
// when len(data) differs from the size of T.
func Cast[T Numeric](data []byte) T {
	var v T
	size := int(unsafe.Sizeof(v))
	if len(data) != size {
		panic("aligned: invalid slice length")
	}

	scratch := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	if endian.IsNativeLittleEndian() {
		copy(scratch, data)
		return v
	}

	for i, b := range data {
		scratch[size-1-i] = b
	}

	return v
}

// Slice decodes len(data)/sizeof(T) consecutive values. Trailing bytes that do not form a
// whole element are ignored.
func Slice[T Numeric](data []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))

	out := make([]T, len(data)/size)
	for i := range out {
		out[i] = Cast[T](data[i*size : (i+1)*size])
	}

	return out
}
