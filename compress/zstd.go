package compress

import "github.com/arloliu/irtelemetry/format"

// ZstdCompressor produces Zstandard frames. It gives the best ratio of the built-in codecs
// and is the default for archiving recordings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor.
//
// Example:
//
//	compressed, err := NewZstdCompressor().Compress(recording)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
