package protocol

import "fmt"

// ProtocolError represents an error status returned by the co-processor.
type ProtocolError struct {
	// Operation is the request that failed
	Operation string

	// Status is the status code from the co-processor response
	Status byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, StatusName(e.Status), e.Status)
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}

// StatusName returns a human-readable name for a status code.
func StatusName(code byte) string {
	switch code {
	case StatusSuccess:
		return "success"
	case ErrNoStagingSpace:
		return "insufficient staging space"
	case ErrInvalidState:
		return "invalid co-processor state"
	case ErrSizeMismatch:
		return "received more bytes than image declared"
	case ErrIncompleteImage:
		return "incomplete image"
	case ErrChecksum:
		return "image checksum mismatch"
	case ErrCommand:
		return "unrecognized command"
	case ErrBusy:
		return "co-processor busy"
	case ErrUnknown:
		return "unknown error"
	default:
		return fmt.Sprintf("unknown status code 0x%02X", code)
	}
}
