// Package espimage parses application firmware image headers.
//
// # Image Format
//
// An image starts with a fixed 24-byte header (magic byte, segment count,
// hash-appended flag) followed by segment_count segments, each carrying an
// 8-byte header (load address, data length) and its data. The image is
// padded to a 16-byte boundary, closed with one checksum byte, and
// optionally followed by a 32-byte SHA-256 digest.
//
// The embedded application version string sits at a fixed offset inside the
// first segment's data (the application descriptor record).
//
// # Why Size Is Computed Structurally
//
// The delivery container does not reveal the image length: a partition is
// over-provisioned and holds trailing garbage, and a streamed download may
// not know its length in advance. The transfer must stop exactly at the
// computed boundary: over-sending corrupts the co-processor's staging
// area, under-sending fails validation at the end of the transfer.
//
//	img, err := espimage.Parse(prefix)
//	if err != nil {
//	    var tr *espimage.TruncatedError
//	    if errors.As(err, &tr) {
//	        // re-probe with at least tr.Need bytes
//	    }
//	}
package espimage
