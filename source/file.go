package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// File reads a firmware image from a filesystem path.
type File struct {
	path string
	f    *os.File
}

// NewFile creates a file-backed source for the image at path.
// The file is not opened until Open is called.
func NewFile(path string) *File {
	return &File{path: path}
}

// Open opens the underlying file.
func (s *File) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open firmware file: %w", err)
	}
	s.f = f
	return nil
}

// HeaderBytes returns the first n bytes of the file. The sequential read
// position is unaffected.
func (s *File) HeaderBytes(n int) ([]byte, error) {
	if s.f == nil {
		return nil, fmt.Errorf("source not open")
	}
	buf := make([]byte, n)
	m, err := s.f.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	return buf[:m], nil
}

// Read reads the next image bytes sequentially.
func (s *File) Read(p []byte) (int, error) {
	if s.f == nil {
		return 0, fmt.Errorf("source not open")
	}
	return s.f.Read(p)
}

// Close closes the underlying file.
func (s *File) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
