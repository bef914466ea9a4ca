package espimage

import "fmt"

// FormatError indicates the buffer does not hold a valid application image.
type FormatError struct {
	// Reason describes what failed to validate
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid image format: %s", e.Reason)
}

// TruncatedError indicates the buffer ends before the structures the header
// declares. Need reports how many bytes of the image prefix are required;
// callers reading from a stream can re-probe with a larger prefix.
type TruncatedError struct {
	// Have is the number of bytes that were available
	Have int

	// Need is the minimum prefix length required to continue parsing
	Need int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated image: have %d bytes, need %d", e.Have, e.Need)
}
