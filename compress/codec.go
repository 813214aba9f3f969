package compress

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/format"
)

// DefaultMaxSize bounds decompressed recordings when the caller passes no limit. It is 4 GiB,
// capped to the largest int on 32-bit platforms.
const DefaultMaxSize int = min(4<<30, math.MaxInt)

// Compressor compresses a whole recording into a self-describing container.
type Compressor interface {
	// Compress compresses data and returns a newly allocated container.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a recording from its container.
type Decompressor interface {
	// Decompress decompresses data, failing with errs.ErrSizeLimitExceeded once the output
	// grows beyond maxSize bytes. A maxSize of zero or less selects DefaultMaxSize.
	//
	// The returned slice is owned by the caller.
	Decompress(data []byte, maxSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the compression type the codec handles.
	Type() format.CompressionType
}

// Container magic numbers.
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic   = []byte("\xff\x06\x00\x00S2sTwO")
)

// Detect identifies the container format from the leading bytes of data. Data that matches
// no known magic number is reported as CompressionNone.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnknownCompression for any other type
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
}

// readLimited drains r, failing once more than maxSize bytes have been produced.
// sizeHint preallocates the output buffer.
func readLimited(r io.Reader, maxSize, sizeHint int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	var buf bytes.Buffer
	buf.Grow(min(sizeHint, maxSize))

	n, err := io.Copy(&buf, io.LimitReader(r, int64(maxSize)+1))
	if err != nil {
		return nil, err
	}

	if n > int64(maxSize) {
		return nil, fmt.Errorf("%w: output exceeds %d bytes", errs.ErrSizeLimitExceeded, maxSize)
	}

	return buf.Bytes(), nil
}
