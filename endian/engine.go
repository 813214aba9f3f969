// Package endian provides the byte order used to decode simulator telemetry.
//
// Every multi-byte field in the telemetry layout, on disk and in the live shared-memory
// region, is little-endian. Decoders obtain the engine once and read fields at fixed offsets:
//
//	engine := endian.GetLittleEndianEngine()
//	tickRate := int32(engine.Uint32(data[8:12]))
//
// Reading through the engine never reinterprets memory in place, so it is safe for any
// source alignment. Host byte order is exposed for the aligned cast helper, which takes a
// copy-and-reinterpret fast path on little-endian hosts.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine reads and appends fixed-size values in one byte order.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeLittleEndian = HostOrder() == binary.LittleEndian

// HostOrder returns the byte order of the running machine.
func HostOrder() binary.ByteOrder {
	probe := uint16(0x00FF)
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0xFF {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsNativeLittleEndian reports whether the host stores integers least significant byte first.
// The result is computed once at package initialization.
func IsNativeLittleEndian() bool {
	return nativeLittleEndian
}

// GetLittleEndianEngine returns the engine for the telemetry wire order.
func GetLittleEndianEngine() Engine {
	return binary.LittleEndian
}
