// Package compress provides the codecs used for compressed telemetry recordings.
//
// A recording is compressed as a whole into a self-describing container: a Zstandard frame,
// an LZ4 frame or an S2 stream. Each container starts with a magic number, so a reader can
// recognize a compressed recording without relying on its file name:
//
//	ctype := compress.Detect(data)
//	codec, err := compress.GetCodec(ctype)
//	if err != nil {
//	    return err
//	}
//	plain, err := codec.Decompress(data, compress.DefaultMaxSize)
//
// # Size limit
//
// Decompression is streamed and stops as soon as the output exceeds the caller's limit, so a
// small malicious input cannot expand into an unbounded allocation. Exceeding the limit fails
// with errs.ErrSizeLimitExceeded.
//
// # Build tags
//
// The Zstandard codec uses the pure Go klauspost/compress implementation by default. Building
// with the gozstd tag switches to the cgo binding of the reference C library.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Internal encoders and decoders
// are pooled.
package compress
