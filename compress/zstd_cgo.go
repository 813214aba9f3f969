//go:build gozstd

package compress

import (
	"bytes"
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data into a single Zstandard frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 19), nil
}

// Decompress decompresses Zstandard-compressed data through the streaming C decoder.
func (c ZstdCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	out, err := readLimited(zr, maxSize, len(data)*4)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
