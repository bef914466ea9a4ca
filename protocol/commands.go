package protocol

import "fmt"

// BuildOtaBeginFrame constructs the control frame that asks the
// co-processor to allocate a clean staging area. If totalSize is non-zero it
// is carried as a 4-byte little-endian hint so the slave can reject images
// that cannot fit before any data is transferred.
func BuildOtaBeginFrame(seq byte, totalSize uint32) *Frame {
	var payload []byte
	if totalSize > 0 {
		payload = []byte{
			byte(totalSize),
			byte(totalSize >> 8),
			byte(totalSize >> 16),
			byte(totalSize >> 24),
		}
	}
	return &Frame{Type: FrameControl, Code: CmdOtaBegin, Seq: seq, Payload: payload}
}

// BuildOtaWriteFrame constructs a data frame carrying one firmware chunk.
// Returns an error if the chunk is empty or exceeds the transport MTU.
func BuildOtaWriteFrame(seq byte, chunk []byte) (*Frame, error) {
	if len(chunk) == 0 {
		return nil, fmt.Errorf("chunk cannot be empty")
	}
	if len(chunk) > MaxPayloadSize {
		return nil, fmt.Errorf("chunk length %d exceeds MTU %d", len(chunk), MaxPayloadSize)
	}
	return &Frame{Type: FrameData, Code: CmdOtaWrite, Seq: seq, Payload: chunk}, nil
}

// BuildOtaEndFrame constructs the control frame that finalizes the transfer.
// The co-processor validates the staged image before acknowledging.
func BuildOtaEndFrame(seq byte) *Frame {
	return &Frame{Type: FrameControl, Code: CmdOtaEnd, Seq: seq}
}

// BuildOtaActivateFrame constructs the control frame that switches the boot
// target and reboots the co-processor.
func BuildOtaActivateFrame(seq byte) *Frame {
	return &Frame{Type: FrameControl, Code: CmdOtaActivate, Seq: seq}
}

// BuildVersionQueryFrame constructs the control frame that queries the
// co-processor's running firmware version.
func BuildVersionQueryFrame(seq byte) *Frame {
	return &Frame{Type: FrameControl, Code: CmdGetFirmwareVersion, Seq: seq}
}
