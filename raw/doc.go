// Package raw decodes the fixed binary structures of the simulator telemetry layout.
//
// The same structures appear at the start of a recorded .ibt file and at the start of the live
// shared-memory region. This package only maps bytes to fields: no field is validated beyond
// the version tag, and no conversion to semantic types happens here (see package telemetry).
//
// # Layout
//
// All integers and floats are little-endian. Strings are fixed-size, NUL-terminated Latin-1.
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (112 bytes)                                       │
//	│  - 10 × i32: version, status, tick rate, session info   │
//	│    update/len/offset, num vars, var header offset,      │
//	│    num buf, buf len                                      │
//	│  - 8 bytes padding                                       │
//	│  - 4 × VarBuf {tick_count, buf_offset, 2 × pad} at 48   │
//	├──────────────────────────────────────────────────────────┤
//	│ DiskSubHeader (32 bytes, files only)                    │
//	│  - start_date i64, start_time f64, end_time f64         │
//	│  - lap_count i32, record_count i32                      │
//	├──────────────────────────────────────────────────────────┤
//	│ VarHeader × num_vars (144 bytes each, at var offset)    │
//	│  - type, offset, count (i32), count_as_time (i8 + pad)  │
//	│  - name[32], desc[64], unit[32]                         │
//	├──────────────────────────────────────────────────────────┤
//	│ Session info (YAML text, at session info offset)        │
//	├──────────────────────────────────────────────────────────┤
//	│ Records (buf_len bytes each, from VarBufs[0].BufOffset) │
//	└──────────────────────────────────────────────────────────┘
//
// Every structure offers Parse to decode from a byte slice, Bytes to re-encode it, and a
// package-level ParseX constructor. Decoding reads each field through the little-endian engine
// at a fixed offset, so the source slice may have any alignment.
package raw
