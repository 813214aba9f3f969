// Package format defines the compression tags of telemetry recordings.
package format

import (
	"fmt"
	"strings"
)

// CompressionType identifies how a recording is compressed on disk.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain .ibt file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix appended to ".ibt" for the compression type.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompressionType parses a compression name such as "zstd" or "lz4", case-insensitively.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
