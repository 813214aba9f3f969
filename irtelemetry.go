// Package irtelemetry decodes iRacing telemetry, both from recorded .ibt files and from the
// live shared-memory feed of a running simulator.
//
// Both sources describe their data the same way: a header, a catalog of typed variables and a
// sequence of fixed-length records. A record is handed out as a telemetry.Sample, and a
// variable's value is read from it with Sample.Read.
//
// # Core Features
//
//   - Zero-copy sequential and random access to recorded files
//   - Typed values for every variable, including decoded enumerations and flag sets
//   - Transparent reading of zstd, S2 and LZ4 compressed recordings
//   - A polling live client that tracks the newest tick and rebuilds its catalog when the
//     simulator changes the variable set
//
// # Basic Usage
//
// Reading a recording:
//
//	f, err := irtelemetry.OpenFile("session.ibt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	speed, _ := f.Vars().Var("Speed")
//	for i, sample := range f.Samples() {
//	    value, _ := sample.Read(speed)
//	    fmt.Printf("%d: %s\n", i, value)
//	}
//
// Polling the simulator:
//
//	client, err := irtelemetry.Connect()
//	if errors.Is(err, errs.ErrDisconnected) {
//	    // the simulator is not running
//	}
//	defer client.Close()
//
//	sample, err := client.Poll()
//
// # Package Structure
//
// This package provides top-level wrappers for the most common use cases. The ibt and live
// packages expose the full options, telemetry holds the data model, raw the fixed binary
// layout and compress the recording codecs.
package irtelemetry

import (
	"github.com/arloliu/irtelemetry/compress"
	"github.com/arloliu/irtelemetry/format"
	"github.com/arloliu/irtelemetry/ibt"
	"github.com/arloliu/irtelemetry/live"
)

// OpenFile loads a recording, decompressing it first when it is a zstd, S2 or LZ4 container.
//
// Parameters:
//   - path: Path of the .ibt file
//   - opts: Loader options (see ibt.Option)
//
// Returns:
//   - *ibt.File: The loaded recording
//   - error: I/O, decompression, layout or conversion error
//
// Example:
//
//	f, err := irtelemetry.OpenFile("session.ibt.zst", ibt.WithMaxSize(1<<30))
func OpenFile(path string, opts ...ibt.Option) (*ibt.File, error) {
	return ibt.Open(path, opts...)
}

// ParseFile loads a recording held in memory.
func ParseFile(data []byte, opts ...ibt.Option) (*ibt.File, error) {
	return ibt.FromBytes(data, opts...)
}

// Connect attaches to the running simulator.
//
// Parameters:
//   - opts: Client options (see live.Option)
//
// Returns:
//   - *live.Client: A connected client
//   - error: errs.ErrDisconnected when the simulator is not running, errs.ErrTimeout when it
//     published nothing within the timeout, or a resource error
func Connect(opts ...live.Option) (*live.Client, error) {
	return live.Connect(opts...)
}

// CompressFile packs a recording into a container OpenFile reads back transparently.
//
// Parameters:
//   - data: Uncompressed recording bytes
//   - ctype: Container format (CompressionZstd, CompressionS2 or CompressionLZ4)
//
// Returns:
//   - []byte: The container
//   - error: errs.ErrUnknownCompression for an unsupported type, or a codec error
func CompressFile(data []byte, ctype format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(ctype)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}
