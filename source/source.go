package source

import "context"

// Source supplies one firmware image as a byte stream. Implementations are
// selected at runtime, so partition, filesystem and download delivery can
// coexist in one binary and be tested uniformly.
//
// Only the byte stream and the header prefix cross this boundary: the OTA
// core derives the image size and version itself.
type Source interface {
	// Open locates and prepares the firmware source. It must be called
	// before HeaderBytes or Read.
	Open(ctx context.Context) error

	// HeaderBytes returns the first n bytes of the image without consuming
	// the stream state needed for later sequential reads. It may return
	// fewer than n bytes when the source is smaller than n.
	HeaderBytes(n int) ([]byte, error)

	// Read is a sequential read of the image bytes, starting at offset 0.
	// It returns io.EOF at end of source.
	Read(p []byte) (int, error)

	// Close releases underlying resources.
	Close() error
}
