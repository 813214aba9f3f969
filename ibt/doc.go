// Package ibt reads recorded telemetry files (.ibt).
//
// A File loads the whole recording into one 16-byte aligned buffer and decodes the header, the
// disk sub-header and the variable catalog once. Samples are borrowed views into that buffer,
// so reading a recording sequentially allocates nothing per record:
//
//	f, err := ibt.Open("session.ibt")
//	if err != nil {
//	    return err
//	}
//	speed, _ := f.Vars().Var("Speed")
//	for i, sample := range f.Samples() {
//	    value, err := sample.Read(speed)
//	    ...
//	}
//
// Recordings compressed with zstd, LZ4 or S2 (see package compress) are recognized by their
// magic number and decompressed transparently.
//
// # Thread Safety
//
// A File is immutable after it is opened and is safe for concurrent use.
package ibt
