package raw

// Format constants.
const (
	Version         = 2  // only supported header version tag
	MaxBufs         = 4  // number of rotating buffer slots in the header
	MaxString       = 32 // size of the name and unit buffers
	MaxDesc         = 64 // size of the description buffer
	Alignment       = 16 // alignment of the file buffer and the live mapping
	StatusConnected = 1  // Header.Status value while the simulator publishes
)

// Structure sizes in bytes.
const (
	HeaderSize    = 112 // fixed header size
	VarBufSize    = 16  // one buffer slot inside the header
	SubHeaderSize = 32  // disk sub-header size, directly after the header in files
	VarHeaderSize = 144 // one variable descriptor
)

// Byte offsets inside the header.
const (
	varBufsOffset = 48 // first VarBuf slot

	SubHeaderOffset = HeaderSize // disk sub-header offset inside a file
)

// Byte offsets inside a variable descriptor.
const (
	varNameOffset = 16
	varDescOffset = varNameOffset + MaxString
	varUnitOffset = varDescOffset + MaxDesc
)
