package ota

import "fmt"

// BeginError indicates the co-processor rejected the staging-area
// allocation, or the transport failed during it. The session is terminal;
// a retry starts over with a fresh Begin.
type BeginError struct {
	Cause error
}

func (e *BeginError) Error() string {
	return fmt.Sprintf("ota begin failed: %v", e.Cause)
}

func (e *BeginError) Unwrap() error { return e.Cause }

// WriteError indicates a chunk transfer failed. BytesSent preserves the
// transfer counter for diagnostics; the session is not resumable.
type WriteError struct {
	// BytesSent is the cumulative byte count before the failed chunk
	BytesSent int

	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("ota write failed after %d bytes: %v", e.BytesSent, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// EndError indicates the co-processor rejected the completed transfer,
// typically because the staged byte count or checksum disagrees with the
// image header.
type EndError struct {
	Cause error
}

func (e *EndError) Error() string {
	return fmt.Sprintf("ota end failed: %v", e.Cause)
}

func (e *EndError) Unwrap() error { return e.Cause }

// ActivateError indicates the boot-target switch was rejected.
type ActivateError struct {
	Cause error
}

func (e *ActivateError) Error() string {
	return fmt.Sprintf("ota activate failed: %v", e.Cause)
}

func (e *ActivateError) Unwrap() error { return e.Cause }

// StateError indicates an operation was attempted in a session state that
// does not allow it. The request is rejected locally and never forwarded
// to the co-processor.
type StateError struct {
	// Operation is the rejected operation
	Operation string

	// State is the session state at the time of the call
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not valid in session state %q", e.Operation, e.State)
}

// SizeMismatchError indicates the source ended before supplying the number
// of bytes the image header declared.
type SizeMismatchError struct {
	// Expected is the structurally computed image size
	Expected int

	// Actual is the number of bytes the source produced
	Actual int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("image size mismatch: header declares %d bytes, source produced %d", e.Expected, e.Actual)
}
