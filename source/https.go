package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultDownloadTimeout bounds the whole HTTP transfer when no custom
// client is supplied.
const DefaultDownloadTimeout = 5 * time.Minute

// HTTPS streams a firmware image from a web server. The image length is not
// known a priori, so HeaderBytes buffers the downloaded prefix and Read
// replays that buffer before continuing with the live stream.
type HTTPS struct {
	url    string
	client *http.Client

	body io.ReadCloser
	buf  []byte
	off  int
}

// NewHTTPS creates a download-backed source for the image at url.
// If client is nil a default client with DefaultDownloadTimeout is used.
func NewHTTPS(url string, client *http.Client) *HTTPS {
	if client == nil {
		client = &http.Client{Timeout: DefaultDownloadTimeout}
	}
	return &HTTPS{url: url, client: client}
}

// Open issues the GET request and checks the response status.
// Only https URLs are accepted: the image authenticity depends on the
// transport.
func (s *HTTPS) Open(ctx context.Context) error {
	if !strings.HasPrefix(s.url, "https://") {
		return fmt.Errorf("image URL must use https, got %q", s.url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("download firmware: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("download firmware: unexpected status %s", resp.Status)
	}

	s.body = resp.Body
	return nil
}

// HeaderBytes returns the first n bytes of the image, pulling more of the
// stream into the replay buffer as needed.
func (s *HTTPS) HeaderBytes(n int) ([]byte, error) {
	if s.body == nil {
		return nil, fmt.Errorf("source not open")
	}
	for len(s.buf) < n {
		chunk := make([]byte, n-len(s.buf))
		m, err := s.body.Read(chunk)
		s.buf = append(s.buf, chunk[:m]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read image header: %w", err)
		}
	}
	if len(s.buf) < n {
		return s.buf, nil
	}
	return s.buf[:n], nil
}

// Read drains the replay buffer first, then continues with the stream.
func (s *HTTPS) Read(p []byte) (int, error) {
	if s.body == nil {
		return 0, fmt.Errorf("source not open")
	}
	if s.off < len(s.buf) {
		n := copy(p, s.buf[s.off:])
		s.off += n
		return n, nil
	}
	return s.body.Read(p)
}

// Close closes the response body.
func (s *HTTPS) Close() error {
	if s.body == nil {
		return nil
	}
	err := s.body.Close()
	s.body = nil
	return err
}
