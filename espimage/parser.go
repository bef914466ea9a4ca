package espimage

import (
	"bytes"
	"encoding/binary"
)

// Parse walks the image header contained in the first bytes of a firmware
// image and computes the exact image size and embedded version.
//
// The buffer must contain at least the top-level header and every segment
// header. Segment data between the headers does not need to be present
// beyond the first segment's application descriptor; a partition or
// random-access source can supply a prefix long enough to span all segment
// headers, while a streamed source grows its probe on TruncatedError.
//
// Total size = header + the sum of (segment header + segment data) over
// all segments, padded to a 16-byte boundary, plus one checksum byte, plus
// a 32-byte SHA-256 digest when the hash-appended flag is set.
func Parse(data []byte) (*Image, error) {
	if len(data) < ImageHeaderSize {
		return nil, &TruncatedError{Have: len(data), Need: ImageHeaderSize}
	}

	if data[0] != Magic {
		return nil, &FormatError{Reason: "bad magic byte"}
	}

	segmentCount := int(data[segmentCountOffset])
	if segmentCount == 0 {
		return nil, &FormatError{Reason: "zero segment count"}
	}
	hashAppended := data[hashAppendedOffset] == 1

	img := &Image{
		SegmentCount: segmentCount,
		HashAppended: hashAppended,
		Version:      VersionUnknown,
		Segments:     make([]int, 0, segmentCount),
	}

	offset := ImageHeaderSize
	total := ImageHeaderSize

	for i := 0; i < segmentCount; i++ {
		if len(data) < offset+SegmentHeaderSize {
			return nil, &TruncatedError{Have: len(data), Need: offset + SegmentHeaderSize}
		}

		dataLen := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))

		img.Segments = append(img.Segments, dataLen)
		total += SegmentHeaderSize + dataLen
		offset += SegmentHeaderSize + dataLen
	}

	// The application descriptor lives at the start of the first segment's
	// data. A prefix too short to reach it is not fatal: the version is
	// advisory and only feeds the skip policy.
	if len(data) >= AppDescOffset+AppDescSize {
		img.Version = versionString(data[AppDescOffset+VersionOffset : AppDescOffset+VersionOffset+VersionSize])
	}

	// Pad to alignment boundary, then the trailing checksum byte
	if pad := total % paddingAlign; pad != 0 {
		total += paddingAlign - pad
	}
	total += ChecksumSize

	if hashAppended {
		total += HashSize
	}

	img.TotalSize = total
	return img, nil
}

// versionString extracts the NUL-terminated version from the descriptor
// field, falling back to VersionUnknown for an empty field.
func versionString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	if len(field) == 0 {
		return VersionUnknown
	}
	return string(field)
}
