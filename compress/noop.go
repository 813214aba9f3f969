package compress

import (
	"fmt"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/format"
)

// NoOpCompressor passes plain recordings through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns the input slice as-is, without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying. The size limit still applies.
func (c NoOpCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	if len(data) > maxSize {
		return nil, fmt.Errorf("%w: input is %d bytes", errs.ErrSizeLimitExceeded, len(data))
	}

	return data, nil
}
