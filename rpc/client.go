package rpc

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/moffa90/go-esphota/link"
	"github.com/moffa90/go-esphota/protocol"
)

// EventHandler receives one asynchronous co-processor notification.
// Handlers run on the dispatcher's event goroutine and should return
// quickly.
type EventHandler func(code byte, payload []byte)

// Client is the request/response dispatcher for the co-processor link.
//
// One request is in flight at a time: calls serialize on an internal mutex
// and block until the matching response frame arrives or the per-call
// timeout fires. Unsolicited event frames are demultiplexed through a
// bounded queue to registered handlers so they are not starved by large OTA
// write bursts.
//
// Client is safe for concurrent use after Start.
type Client struct {
	device io.ReadWriter
	config Config

	callMu  sync.Mutex
	pending chan *protocol.Frame
	seq     byte

	events   *link.Queue
	handlers map[byte][]EventHandler
	hmu      sync.RWMutex

	done    chan struct{}
	stopped sync.Once

	errMu sync.Mutex
	err   error
}

// New creates a dispatcher over device. The device must implement
// io.ReadWriter for communication with the co-processor; link.Serial is the
// production implementation.
//
// Example:
//
//	port, _ := link.OpenSerial("/dev/ttyUSB0", 921600, time.Second)
//	client := rpc.New(port, rpc.WithCallTimeout(5*time.Second))
//	client.Start()
//	defer client.Close()
func New(device io.ReadWriter, opts ...Option) *Client {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		device:   device,
		config:   cfg,
		pending:  make(chan *protocol.Frame, 1),
		events:   link.NewQueue(cfg.EventQueueDepth, cfg.OnQueueHighWater, cfg.OnQueueLowWater),
		handlers: make(map[byte][]EventHandler),
		done:     make(chan struct{}),
	}
}

// Start launches the reader and event-dispatch goroutines.
func (c *Client) Start() {
	go c.readLoop()
	go c.eventLoop()
}

// Close tears down the dispatcher. In-flight calls fail with a transport
// error; queued events are dropped.
func (c *Client) Close() {
	c.stopped.Do(func() {
		close(c.done)
		c.events.Close()
	})
}

// OnEvent registers a handler for the given event code. Multiple handlers
// per code are invoked in registration order.
func (c *Client) OnEvent(code byte, h EventHandler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.handlers[code] = append(c.handlers[code], h)
}

// OtaBegin asks the co-processor to allocate a clean staging area for an
// image of totalSize bytes. Re-issuing OtaBegin after a failed session is
// valid and resets any partial staging state.
func (c *Client) OtaBegin(ctx context.Context, totalSize uint32) error {
	_, err := c.call(ctx, "ota begin", protocol.BuildOtaBeginFrame(0, totalSize))
	return err
}

// OtaWrite transfers one firmware chunk. The chunk must fit in a single
// frame (at most protocol.MaxPayloadSize bytes).
func (c *Client) OtaWrite(ctx context.Context, chunk []byte) error {
	f, err := protocol.BuildOtaWriteFrame(0, chunk)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "ota write", f)
	return err
}

// OtaEnd finalizes the transfer. The co-processor validates the complete
// staged image before acknowledging; a byte count that disagrees with the
// image header surfaces here as a protocol error.
func (c *Client) OtaEnd(ctx context.Context) error {
	_, err := c.call(ctx, "ota end", protocol.BuildOtaEndFrame(0))
	return err
}

// OtaActivate switches the co-processor's boot target and triggers its
// reboot. This is a point of no return: RPC state on both sides assumes a
// single continuous session, so the host is expected to restart shortly
// after a successful activate.
func (c *Client) OtaActivate(ctx context.Context) error {
	_, err := c.call(ctx, "ota activate", protocol.BuildOtaActivateFrame(0))
	return err
}

// FirmwareVersion queries the co-processor's currently running firmware
// version.
func (c *Client) FirmwareVersion(ctx context.Context) (protocol.FirmwareVersion, error) {
	resp, err := c.call(ctx, "get firmware version", protocol.BuildVersionQueryFrame(0))
	if err != nil {
		return protocol.FirmwareVersion{}, err
	}
	return protocol.ParseVersionResponse(resp.Payload)
}

// call sends one request frame and waits for the matching response.
func (c *Client) call(ctx context.Context, op string, f *protocol.Frame) (*protocol.Frame, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	if err := c.transportErr(); err != nil {
		return nil, &TransportError{Operation: op, Cause: err}
	}

	c.seq++
	f.Seq = c.seq

	buf, err := f.Encode()
	if err != nil {
		return nil, err
	}

	// Drain a stale response left over from a timed-out predecessor
	select {
	case <-c.pending:
	default:
	}

	if _, err := c.device.Write(buf); err != nil {
		c.fail(err)
		return nil, &TransportError{Operation: op, Cause: err}
	}

	callCtx := ctx
	if c.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
	}

	for {
		select {
		case resp := <-c.pending:
			if resp.Seq != f.Seq {
				// Stale response from an earlier timed-out call
				continue
			}
			if resp.Code != protocol.StatusSuccess {
				return nil, &protocol.ProtocolError{Operation: op, Status: resp.Code}
			}
			return resp, nil
		case <-callCtx.Done():
			return nil, &TransportError{Operation: op, Cause: callCtx.Err(), Timeout: true}
		case <-c.done:
			return nil, &TransportError{Operation: op, Cause: c.transportErr()}
		}
	}
}

// readLoop decodes frames off the link and routes them: events to the
// bounded queue, everything else to the outstanding call.
func (c *Client) readLoop() {
	r := protocol.NewReader(c.device)
	for {
		select {
		case <-c.done:
			return
		default:
		}

		f, err := r.ReadFrame()
		if err != nil {
			if isFatalReadError(err) {
				c.fail(err)
				c.Close()
				return
			}
			// Framing error: the reader resynchronizes on the next SOF
			continue
		}

		if f.Type == protocol.FrameEvent {
			// Backpressure: a full queue drops the event rather than
			// stalling response delivery
			c.events.Push(f)
			continue
		}

		select {
		case c.pending <- f:
		default:
			// No outstanding call: stale response, drop it
		}
	}
}

// eventLoop feeds queued events to registered handlers.
func (c *Client) eventLoop() {
	ctx := context.Background()
	for {
		f, err := c.events.Pop(ctx)
		if err != nil {
			return
		}
		c.hmu.RLock()
		handlers := c.handlers[f.Code]
		c.hmu.RUnlock()
		for _, h := range handlers {
			h(f.Code, f.Payload)
		}
	}
}

// fail records the first terminal transport error.
func (c *Client) fail(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *Client) transportErr() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err != nil {
		return c.err
	}
	select {
	case <-c.done:
		return fmt.Errorf("dispatcher closed")
	default:
		return nil
	}
}
