package source

import (
	"context"
	"fmt"
	"io"
)

// Partition reads a firmware image from a fixed window of random-access
// storage. Partitions are over-provisioned: the window is usually larger
// than the image and holds trailing garbage, so the caller must bound the
// transfer by the structurally computed image size, never by the window.
type Partition struct {
	r    io.ReaderAt
	size int64
	off  int64
}

// NewPartition creates a source over the first size bytes of r.
func NewPartition(r io.ReaderAt, size int64) *Partition {
	return &Partition{r: r, size: size}
}

// Open validates the window.
func (s *Partition) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.r == nil {
		return fmt.Errorf("partition reader is nil")
	}
	if s.size <= 0 {
		return fmt.Errorf("partition size must be positive, got %d", s.size)
	}
	return nil
}

// HeaderBytes returns the first n bytes of the window.
func (s *Partition) HeaderBytes(n int) ([]byte, error) {
	if int64(n) > s.size {
		n = int(s.size)
	}
	buf := make([]byte, n)
	m, err := s.r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read partition header: %w", err)
	}
	return buf[:m], nil
}

// Read reads the next bytes of the window sequentially.
func (s *Partition) Read(p []byte) (int, error) {
	if s.off >= s.size {
		return 0, io.EOF
	}
	if remain := s.size - s.off; int64(len(p)) > remain {
		p = p[:remain]
	}
	n, err := s.r.ReadAt(p, s.off)
	s.off += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

// Close releases nothing: the caller owns the underlying reader.
func (s *Partition) Close() error {
	return nil
}
