package compress

import (
	"bytes"
	"fmt"

	"github.com/arloliu/irtelemetry/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor produces S2 streams. It balances compression speed and ratio.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data into an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(s2.MaxEncodedLen(len(data)) + 32)

	zw := s2.NewWriter(&buf, s2.WriterBetterCompression(), s2.WriterConcurrency(1))
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 stream.
func (c S2Compressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readLimited(s2.NewReader(bytes.NewReader(data)), maxSize, len(data)*2)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
