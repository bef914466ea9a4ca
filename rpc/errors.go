package rpc

import (
	"errors"
	"fmt"
	"io"
)

// TransportError indicates the link failed while a request was in flight:
// disconnection, write failure, or a response timeout. Transport errors are
// always fatal to the current OTA session.
type TransportError struct {
	// Operation is the request that was in flight
	Operation string

	// Cause is the underlying link or context error
	Cause error

	// Timeout reports whether the error was a response timeout
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: response timeout: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: transport failure: %v", e.Operation, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransportError returns true if err is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// isFatalReadError distinguishes loss of the medium from recoverable
// framing noise. Framing errors resynchronize at the next frame boundary;
// stream termination tears the dispatcher down.
//
// io.ErrNoProgress is recoverable: a serial port with a read timeout
// returns (0, nil) on each quiet interval, and bufio reports a run of
// empty reads as ErrNoProgress. An idle link is not a dead link.
func isFatalReadError(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe)
}
