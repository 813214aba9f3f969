package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/arloliu/irtelemetry/format"
	"github.com/pierrec/lz4/v4"
)

// lz4ReaderPool pools frame readers; Reset rebinds them to a new source.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Compressor produces LZ4 frames. It decompresses fastest of the built-in codecs.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into a single LZ4 frame.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: LZ4 frame, including the frame header for empty input
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(lz4.CompressBlockBound(len(data)) + 32)

	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer lz4ReaderPool.Put(zr)

	zr.Reset(bytes.NewReader(data))
	defer zr.Reset(nil)

	out, err := readLimited(zr, maxSize, len(data)*4)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}
