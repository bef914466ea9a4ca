package ota

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/moffa90/go-esphota/espimage"
	"github.com/moffa90/go-esphota/protocol"
	"github.com/moffa90/go-esphota/rpc"
)

type pipeDevice struct {
	io.Reader
	io.Writer
}

// fakeSlave simulates the co-processor end of the link. It acknowledges
// requests, serves a fixed firmware version, and records the write sizes of
// each Begin-delimited attempt.
type fakeSlave struct {
	reader *protocol.Reader
	writer io.Writer

	version      protocol.FirmwareVersion
	statuses     map[byte]byte // per-command status override
	silentWrites map[int]bool  // 1-based write index across all attempts

	mu        sync.Mutex
	attempts  [][]int // write payload sizes, one slice per OtaBegin
	writeSeen int
}

func newFakeSlave(version protocol.FirmwareVersion) *fakeSlave {
	return &fakeSlave{
		version:      version,
		statuses:     make(map[byte]byte),
		silentWrites: make(map[int]bool),
	}
}

// start wires the slave to a fresh dispatcher over an in-memory pipe pair.
func (fs *fakeSlave) start(t *testing.T) *rpc.Client {
	t.Helper()

	hostR, slaveW := io.Pipe()
	slaveR, hostW := io.Pipe()
	fs.reader = protocol.NewReader(slaveR)
	fs.writer = slaveW
	go fs.serve()

	client := rpc.New(pipeDevice{hostR, hostW}, rpc.WithCallTimeout(150*time.Millisecond))
	client.Start()
	t.Cleanup(func() {
		client.Close()
		hostW.Close()
		slaveW.Close()
	})
	return client
}

func (fs *fakeSlave) serve() {
	for {
		req, err := fs.reader.ReadFrame()
		if err != nil {
			return
		}

		var payload []byte
		switch req.Code {
		case protocol.CmdOtaBegin:
			fs.mu.Lock()
			fs.attempts = append(fs.attempts, nil)
			fs.mu.Unlock()
		case protocol.CmdOtaWrite:
			fs.mu.Lock()
			fs.writeSeen++
			silent := fs.silentWrites[fs.writeSeen]
			if n := len(fs.attempts); n > 0 {
				fs.attempts[n-1] = append(fs.attempts[n-1], len(req.Payload))
			}
			fs.mu.Unlock()
			if silent {
				continue
			}
		case protocol.CmdGetFirmwareVersion:
			payload = make([]byte, protocol.VersionResponseSize)
			binary.LittleEndian.PutUint32(payload[0:4], fs.version.Major)
			binary.LittleEndian.PutUint32(payload[4:8], fs.version.Minor)
			binary.LittleEndian.PutUint32(payload[8:12], fs.version.Patch)
		}

		status := byte(protocol.StatusSuccess)
		if s, ok := fs.statuses[req.Code]; ok {
			status = s
		}

		resp := &protocol.Frame{
			Type:    protocol.FrameControl,
			Code:    status,
			Seq:     req.Seq,
			Payload: payload,
		}
		buf, err := resp.Encode()
		if err != nil {
			return
		}
		if _, err := fs.writer.Write(buf); err != nil {
			return
		}
	}
}

func (fs *fakeSlave) beginCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.attempts)
}

// attemptWrites returns a copy of the write sizes for attempt i (0-based).
func (fs *fakeSlave) attemptWrites(i int) []int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if i >= len(fs.attempts) {
		return nil
	}
	return append([]int(nil), fs.attempts[i]...)
}

func (fs *fakeSlave) totalWritten(i int) int {
	total := 0
	for _, n := range fs.attemptWrites(i) {
		total += n
	}
	return total
}

// buildTestImage assembles a well-formed firmware image with the version
// embedded in the first segment's application descriptor.
func buildTestImage(t *testing.T, version string, segments []int, hashAppended bool) []byte {
	t.Helper()

	var buf bytes.Buffer

	header := make([]byte, espimage.ImageHeaderSize)
	header[0] = espimage.Magic
	header[1] = byte(len(segments))
	if hashAppended {
		header[espimage.ImageHeaderSize-1] = 1
	}
	buf.Write(header)

	for i, segLen := range segments {
		seg := make([]byte, espimage.SegmentHeaderSize)
		binary.LittleEndian.PutUint32(seg[0:4], 0x40080000)
		binary.LittleEndian.PutUint32(seg[4:8], uint32(segLen))
		buf.Write(seg)

		data := make([]byte, segLen)
		if i == 0 && segLen >= espimage.VersionOffset+espimage.VersionSize {
			copy(data[espimage.VersionOffset:], version)
		}
		buf.Write(data)
	}

	for buf.Len()%16 != 0 {
		buf.WriteByte(0xFF)
	}
	buf.WriteByte(0xA5)

	if hashAppended {
		buf.Write(make([]byte, espimage.HashSize))
	}

	return buf.Bytes()
}
