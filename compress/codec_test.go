package compress

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/format"
	"github.com/stretchr/testify/require"
)

// recordingLike builds data shaped like a recording: a header region followed by slowly
// changing fixed-size records.
func recordingLike(records int) []byte {
	var buf bytes.Buffer
	buf.WriteString("WeekendInfo:\n TrackName: spa\n")
	for i := range records {
		fmt.Fprintf(&buf, "%08d|%016x|", i, i*i)
	}

	return buf.Bytes()
}

func getCompressingCodecs() map[string]Codec {
	return map[string]Codec{
		"Zstd": NewZstdCompressor(),
		"S2":   NewS2Compressor(),
		"LZ4":  NewLZ4Compressor(),
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	sizes := []int{1, 100, 10000}

	for name, codec := range getCompressingCodecs() {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				data := recordingLike(size)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)
				require.Equal(t, codec.Type(), Detect(compressed))

				decompressed, err := codec.Decompress(compressed, 0)
				require.NoError(t, err)
				require.Equal(t, data, decompressed)
			})
		}
	}
}

func TestAllCodecs_Compresses(t *testing.T) {
	data := recordingLike(10000)

	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))
		})
	}
}

func TestAllCodecs_SizeLimit(t *testing.T) {
	data := recordingLike(1000)

	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, len(data)-1)
			require.ErrorIs(t, err, errs.ErrSizeLimitExceeded)

			out, err := codec.Decompress(compressed, len(data))
			require.NoError(t, err)
			require.Len(t, out, len(data))
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte("definitely not a compressed recording")

	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decompress(garbage, 0)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_EmptyInput(t *testing.T) {
	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			out, err := codec.Decompress(nil, 0)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := recordingLike(500)

	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 8)

			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}

					out, err := codec.Decompress(compressed, 0)
					if err != nil {
						errCh <- err
						return
					}

					if !bytes.Equal(data, out) {
						errCh <- fmt.Errorf("round trip mismatch")
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestNoOpCompressor(t *testing.T) {
	codec := NewNoOpCompressor()
	data := recordingLike(10)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)
	require.Equal(t, format.CompressionNone, Detect(compressed))

	out, err := codec.Decompress(data, 0)
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.Decompress(data, len(data)-1)
	require.ErrorIs(t, err, errs.ErrSizeLimitExceeded)
}

func TestDefaultMaxSize(t *testing.T) {
	if strconv.IntSize == 64 {
		require.Equal(t, int64(4<<30), int64(DefaultMaxSize))
	} else {
		require.Equal(t, math.MaxInt, DefaultMaxSize)
	}

	for name, codec := range getCompressingCodecs() {
		t.Run(name, func(t *testing.T) {
			data := recordingLike(100)
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed, 0)
			require.NoError(t, err)
			require.Equal(t, data, out)
		})
	}
}

func TestDetect(t *testing.T) {
	require.Equal(t, format.CompressionZstd, Detect([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}))
	require.Equal(t, format.CompressionLZ4, Detect([]byte{0x04, 0x22, 0x4D, 0x18, 0x64}))
	require.Equal(t, format.CompressionS2, Detect([]byte("\xff\x06\x00\x00S2sTwO\x01")))
	require.Equal(t, format.CompressionNone, Detect([]byte{2, 0, 0, 0}))
	require.Equal(t, format.CompressionNone, Detect([]byte{0x28, 0xB5}))
	require.Equal(t, format.CompressionNone, Detect(nil))
}

func TestCreateCodec(t *testing.T) {
	for _, ctype := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ctype)
		require.NoError(t, err)
		require.Equal(t, ctype, codec.Type())

		builtin, err := GetCodec(ctype)
		require.NoError(t, err)
		require.Equal(t, ctype, builtin.Type())
	}

	_, err := CreateCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}
