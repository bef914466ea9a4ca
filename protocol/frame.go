package protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Frame is the unit exchanged with the co-processor.
//
// Wire layout:
//
//	[SOF][TYPE][CMD/STATUS][SEQ][LEN_L][LEN_H][PAYLOAD...][CHECKSUM_L][CHECKSUM_H][EOF]
//
// For host-to-slave frames the third byte is a command code; for
// slave-to-host responses it is a status code; for event frames it is an
// event code. LEN and CHECKSUM are little-endian.
type Frame struct {
	// Type is one of FrameControl, FrameData, FrameEvent
	Type byte

	// Code is the command, status or event code depending on direction
	Code byte

	// Seq is the sequence number; responses echo the request's Seq
	Seq byte

	// Payload is the frame data, at most MaxPayloadSize bytes
	Payload []byte
}

// Encode serializes the frame into wire format.
// Returns an error if the payload exceeds the transport MTU.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("payload length %d exceeds MTU %d", len(f.Payload), MaxPayloadSize)
	}

	buf := make([]byte, 0, MinFrameSize+len(f.Payload))
	buf = append(buf, StartOfFrame)
	buf = append(buf, f.Type)
	buf = append(buf, f.Code)
	buf = append(buf, f.Seq)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(len(f.Payload)))
	buf = append(buf, lenBytes...)

	buf = append(buf, f.Payload...)

	// Checksum covers TYPE through PAYLOAD, excluding SOF
	checksum := calculateFrameChecksum(buf[1:])
	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, checksum)
	buf = append(buf, checksumBytes...)

	buf = append(buf, EndOfFrame)

	return buf, nil
}

// Parse validates and decodes a complete frame from buf.
// The buffer must contain exactly one frame.
func Parse(buf []byte) (*Frame, error) {
	if len(buf) < MinFrameSize {
		return nil, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(buf), MinFrameSize)
	}

	if buf[0] != StartOfFrame {
		return nil, fmt.Errorf("invalid start of frame: got 0x%02X, expected 0x%02X", buf[0], StartOfFrame)
	}

	if buf[len(buf)-1] != EndOfFrame {
		return nil, fmt.Errorf("invalid end of frame: got 0x%02X, expected 0x%02X", buf[len(buf)-1], EndOfFrame)
	}

	payloadLen := binary.LittleEndian.Uint16(buf[4:6])
	if int(payloadLen) > MaxPayloadSize {
		return nil, fmt.Errorf("declared payload length %d exceeds MTU %d", payloadLen, MaxPayloadSize)
	}

	expectedLen := MinFrameSize + int(payloadLen)
	if len(buf) != expectedLen {
		return nil, fmt.Errorf("frame length mismatch: got %d bytes, expected %d", len(buf), expectedLen)
	}

	checksumExpected := binary.LittleEndian.Uint16(buf[len(buf)-3 : len(buf)-1])
	checksumActual := calculateFrameChecksum(buf[1 : len(buf)-3])
	if checksumExpected != checksumActual {
		return nil, fmt.Errorf("checksum mismatch: got 0x%04X, expected 0x%04X", checksumActual, checksumExpected)
	}

	f := &Frame{
		Type: buf[1],
		Code: buf[2],
		Seq:  buf[3],
	}
	if payloadLen > 0 {
		f.Payload = make([]byte, payloadLen)
		copy(f.Payload, buf[HeaderSize:HeaderSize+int(payloadLen)])
	}

	return f, nil
}

// Reader decodes frames from a byte stream. It tolerates garbage between
// frames by scanning forward for the next start-of-frame marker, which is
// required on UART-style links where the stream may resume mid-frame.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r in a frame decoder.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, MinFrameSize+MaxPayloadSize)}
}

// ReadFrame reads and validates the next frame from the stream.
// Bytes preceding the start-of-frame marker are discarded. A frame that
// fails checksum or trailer validation is discarded and reported as an
// error; the caller may keep reading to resynchronize.
func (r *Reader) ReadFrame() (*Frame, error) {
	// Scan for SOF
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == StartOfFrame {
			break
		}
	}

	header := make([]byte, HeaderSize-1) // TYPE, CODE, SEQ, LEN_L, LEN_H
	if _, err := io.ReadFull(r.br, header); err != nil {
		return nil, fmt.Errorf("read frame header: %w", err)
	}

	payloadLen := binary.LittleEndian.Uint16(header[3:5])
	if int(payloadLen) > MaxPayloadSize {
		return nil, fmt.Errorf("declared payload length %d exceeds MTU %d", payloadLen, MaxPayloadSize)
	}

	rest := make([]byte, int(payloadLen)+TrailerSize)
	if _, err := io.ReadFull(r.br, rest); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}

	buf := make([]byte, 0, MinFrameSize+int(payloadLen))
	buf = append(buf, StartOfFrame)
	buf = append(buf, header...)
	buf = append(buf, rest...)

	return Parse(buf)
}

// calculateFrameChecksum computes the 16-bit checksum over data: sum all
// bytes, then two's complement.
func calculateFrameChecksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return 1 + (0xFFFF ^ sum)
}
