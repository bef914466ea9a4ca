package espimage

// Constants describing the application image binary layout.
const (
	// Magic is the first byte of a valid application image
	Magic = 0xE9

	// ImageHeaderSize is the size of the top-level image header
	ImageHeaderSize = 24

	// SegmentHeaderSize is the size of each segment header:
	// load_addr(4) + data_len(4)
	SegmentHeaderSize = 8

	// AppDescOffset is the offset of the application descriptor: it sits at
	// the start of the first segment's data, immediately after the image
	// header and the first segment header
	AppDescOffset = ImageHeaderSize + SegmentHeaderSize

	// AppDescSize is the size of the application descriptor record
	AppDescSize = 256

	// VersionOffset is the offset of the version string within the
	// application descriptor
	VersionOffset = 16

	// VersionSize is the size of the NUL-terminated version string field
	VersionSize = 32

	// segmentCountOffset is the offset of the segment count in the header
	segmentCountOffset = 1

	// hashAppendedOffset is the offset of the hash-appended flag in the header
	hashAppendedOffset = 23

	// paddingAlign is the alignment boundary the image is padded to before
	// the trailing checksum byte
	paddingAlign = 16

	// ChecksumSize is the size of the trailing checksum byte
	ChecksumSize = 1

	// HashSize is the size of the optional trailing SHA-256 digest
	HashSize = 32
)

// VersionUnknown is reported when the buffer is too short to reach the
// application descriptor. The update still proceeds; only version-dependent
// policies (skip-if-same) are disabled.
const VersionUnknown = "unknown"

// Image describes one parsed firmware image.
type Image struct {
	// TotalSize is the exact byte length of the image, computed structurally
	// from the header. The transfer must be truncated at this boundary:
	// a partition or download container may hold trailing garbage.
	TotalSize int

	// SegmentCount is the number of segments declared by the header
	SegmentCount int

	// HashAppended reports whether a 32-byte SHA-256 digest trails the image
	HashAppended bool

	// Version is the embedded application version string, or VersionUnknown
	// if the descriptor was not reachable in the parsed prefix
	Version string

	// Segments holds the data length of each segment in declaration order
	Segments []int
}
