package link

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is used when no baud rate is configured.
const DefaultBaudRate = 921600

// Serial adapts a UART port to the io.ReadWriteCloser contract the RPC
// dispatcher consumes. Framing and checksums live above this layer; the
// port only moves bytes.
type Serial struct {
	port serial.Port
	name string
}

// OpenSerial opens the named port. A non-zero readTimeout bounds each
// blocking Read so a dead link surfaces as an error instead of hanging the
// dispatcher's reader.
func OpenSerial(name string, baudRate int, readTimeout time.Duration) (*Serial, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	if readTimeout > 0 {
		if err := port.SetReadTimeout(readTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
		}
	}

	return &Serial{port: port, name: name}, nil
}

// Read reads raw bytes from the port.
func (s *Serial) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

// Write writes raw bytes to the port.
func (s *Serial) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}

// Name returns the port name the link was opened with.
func (s *Serial) Name() string {
	return s.name
}
