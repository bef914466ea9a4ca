package link

import (
	"context"
	"errors"
	"sync"

	"github.com/moffa90/go-esphota/protocol"
)

// ErrQueueClosed is returned by Pop after Close once the queue drains.
var ErrQueueClosed = errors.New("queue closed")

// DefaultQueueDepth is the default bounded depth for a frame queue.
const DefaultQueueDepth = 16

// Queue is a bounded FIFO of frames with high/low watermark signaling.
// The co-processor has limited buffer memory, so the receive path must
// apply backpressure instead of growing without bound: Push on a full
// queue fails rather than blocking the link reader.
type Queue struct {
	mu     sync.Mutex
	items  []*protocol.Frame
	depth  int
	high   int
	low    int
	above  bool
	onHigh func(depth int)
	onLow  func(depth int)

	signal chan struct{}
	closed bool
}

// NewQueue creates a queue bounded at depth frames. The high watermark is
// 3/4 of depth and the low watermark 1/4; crossing them upward/downward
// fires the respective callback. Either callback may be nil.
func NewQueue(depth int, onHigh, onLow func(depth int)) *Queue {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	q := &Queue{
		depth:  depth,
		high:   depth * 3 / 4,
		low:    depth / 4,
		onHigh: onHigh,
		onLow:  onLow,
		signal: make(chan struct{}, 1),
	}
	if q.high == 0 {
		q.high = depth
	}
	return q
}

// Push appends a frame. It returns false when the queue is full or closed;
// the frame is dropped and the caller decides whether that is an error.
func (q *Queue) Push(f *protocol.Frame) bool {
	q.mu.Lock()
	if q.closed || len(q.items) >= q.depth {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, f)
	fireHigh := !q.above && len(q.items) >= q.high
	if fireHigh {
		q.above = true
	}
	n := len(q.items)
	q.mu.Unlock()

	if fireHigh && q.onHigh != nil {
		q.onHigh(n)
	}

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Pop removes and returns the oldest frame, blocking until one is
// available, the context is cancelled, or the queue is closed and drained.
func (q *Queue) Pop(ctx context.Context) (*protocol.Frame, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			f := q.items[0]
			q.items = q.items[1:]
			fireLow := q.above && len(q.items) <= q.low
			if fireLow {
				q.above = false
			}
			n := len(q.items)
			q.mu.Unlock()
			if fireLow && q.onLow != nil {
				q.onLow(n)
			}
			return f, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		}
	}
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed. Queued frames remain poppable; Push fails
// and Pop returns ErrQueueClosed once drained.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}
