// Package errs defines the error values returned by irtelemetry packages.
//
// Most failures are reported through sentinel errors so callers can branch with errors.Is.
// Failures that carry data (the rejected version tag, the offending field, the read window)
// use typed errors that unwrap to the matching sentinel:
//
//	value, err := sample.Read(v)
//	if errors.Is(err, errs.ErrOutOfBounds) {
//	    // the descriptor does not fit this sample
//	}
//
//	var convErr *errs.ConversionError
//	if errors.As(err, &convErr) {
//	    log.Printf("bad field %s.%s", convErr.Struct, convErr.Field)
//	}
package errs

import (
	"errors"
	"fmt"
)

// Format errors: the fixed-size layout itself is unusable.
var (
	// ErrFormat is the parent of every layout error. A file or connection that reports it is unusable.
	ErrFormat = errors.New("malformed telemetry layout")
	// ErrInvalidHeaderSize indicates the input is shorter than the fixed struct being decoded.
	ErrInvalidHeaderSize = fmt.Errorf("%w: input shorter than fixed header size", ErrFormat)
	// ErrRegionOutOfRange indicates a header-declared region lies outside the loaded data.
	ErrRegionOutOfRange = fmt.Errorf("%w: declared region outside of data", ErrFormat)
	// ErrUnsupportedVersion indicates the header version tag is not the supported value.
	ErrUnsupportedVersion = errors.New("unsupported telemetry version")
)

// Decoding errors.
var (
	// ErrConversion indicates a raw field violated its semantic invariant.
	ErrConversion = errors.New("raw field conversion failed")
	// ErrOutOfBounds indicates a variable does not fit inside the sample it is read from.
	ErrOutOfBounds = errors.New("variable out of sample bounds")
	// ErrUnsupportedArray indicates an array of an element type the format never stores as arrays.
	ErrUnsupportedArray = errors.New("unsupported array element type")
	// ErrRecordOutOfRange indicates a sample index at or beyond the recorded count.
	ErrRecordOutOfRange = errors.New("record index out of range")
	// ErrUnknownCompression indicates a compression type with no registered codec.
	ErrUnknownCompression = errors.New("unknown compression type")
	// ErrSizeLimitExceeded indicates decompressed data grew beyond the configured limit.
	ErrSizeLimitExceeded = errors.New("decompressed size limit exceeded")
)

// Live feed errors.
var (
	// ErrDisconnected indicates the simulator is not running or stopped publishing.
	// It is expected; callers reconnect and retry.
	ErrDisconnected = errors.New("simulator is not running")
	// ErrTimeout indicates no data signal arrived inside the wait window. It is retryable.
	ErrTimeout = errors.New("timed out waiting for data signal")
	// ErrResource indicates an OS-level handle misbehaved. It is terminal.
	ErrResource = errors.New("shared resource failure")
	// ErrUnsupportedPlatform indicates the live feed cannot be attached on this OS.
	ErrUnsupportedPlatform = fmt.Errorf("%w: live telemetry is not supported on this platform", ErrResource)
)

// VersionError reports a header whose version tag is not the supported value.
type VersionError struct {
	Got int32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: got %d", ErrUnsupportedVersion, e.Got)
}

// Unwrap lets errors.Is match both ErrUnsupportedVersion and ErrFormat.
func (e *VersionError) Unwrap() []error {
	return []error{ErrUnsupportedVersion, ErrFormat}
}

// ConversionError identifies the raw field that failed its semantic check.
type ConversionError struct {
	Struct string // raw struct name, e.g. "Header"
	Field  string // raw field name, e.g. "num_vars"
	Value  int64  // offending raw value, when it is integral
	Reason string
}

func (e *ConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s.%s: %s", ErrConversion, e.Struct, e.Field, e.Reason)
	}

	return fmt.Sprintf("%s: %s.%s = %d", ErrConversion, e.Struct, e.Field, e.Value)
}

func (e *ConversionError) Unwrap() error {
	return ErrConversion
}

// BoundsError reports a read window that exceeds the sample length.
type BoundsError struct {
	Var    string
	Offset int
	Size   int
	Len    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %q needs [%d, %d) of %d bytes",
		ErrOutOfBounds, e.Var, e.Offset, e.Offset+e.Size, e.Len)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// UnsupportedArrayError reports an array variable whose element type cannot be an array.
type UnsupportedArrayError struct {
	Var  string
	Type string
}

func (e *UnsupportedArrayError) Error() string {
	return fmt.Sprintf("%s: %q is an array of %s", ErrUnsupportedArray, e.Var, e.Type)
}

func (e *UnsupportedArrayError) Unwrap() error {
	return ErrUnsupportedArray
}

// ResourceError wraps an OS failure on the shared mapping or the data signal.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrResource, e.Op, e.Err)
}

func (e *ResourceError) Unwrap() []error {
	return []error{ErrResource, e.Err}
}
