package link

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moffa90/go-esphota/protocol"
)

func eventFrame(seq byte) *protocol.Frame {
	return &protocol.Frame{Type: protocol.FrameEvent, Code: protocol.EventHeartbeat, Seq: seq}
}

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue(8, nil, nil)
	for i := 0; i < 5; i++ {
		if !q.Push(eventFrame(byte(i))) {
			t.Fatalf("Push %d failed", i)
		}
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f, err := q.Pop(ctx)
		if err != nil {
			t.Fatalf("Pop %d failed: %v", i, err)
		}
		if f.Seq != byte(i) {
			t.Errorf("Pop %d returned seq %d", i, f.Seq)
		}
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(4, nil, nil)
	for i := 0; i < 4; i++ {
		if !q.Push(eventFrame(byte(i))) {
			t.Fatalf("Push %d failed", i)
		}
	}
	if q.Push(eventFrame(99)) {
		t.Error("Push succeeded on a full queue")
	}
	if q.Len() != 4 {
		t.Errorf("Len = %d, want 4", q.Len())
	}
}

func TestQueueWatermarks(t *testing.T) {
	var highAt, lowAt []int
	q := NewQueue(8, // high = 6, low = 2
		func(n int) { highAt = append(highAt, n) },
		func(n int) { lowAt = append(lowAt, n) },
	)

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		q.Push(eventFrame(byte(i)))
	}
	// Only the upward crossing fires, not every push above it
	if len(highAt) != 1 || highAt[0] != 6 {
		t.Errorf("high watermark fired at %v, want [6]", highAt)
	}

	for i := 0; i < 8; i++ {
		if _, err := q.Pop(ctx); err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
	}
	if len(lowAt) != 1 || lowAt[0] != 2 {
		t.Errorf("low watermark fired at %v, want [2]", lowAt)
	}

	// The cycle re-arms: a second burst crosses again
	for i := 0; i < 8; i++ {
		q.Push(eventFrame(byte(i)))
	}
	if len(highAt) != 2 {
		t.Errorf("high watermark fired %d times after refill, want 2", len(highAt))
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue(4, nil, nil)

	done := make(chan *protocol.Frame, 1)
	go func() {
		f, err := q.Pop(context.Background())
		if err != nil {
			t.Errorf("Pop failed: %v", err)
		}
		done <- f
	}()

	time.Sleep(10 * time.Millisecond)
	q.Push(eventFrame(7))

	select {
	case f := <-done:
		if f.Seq != 7 {
			t.Errorf("Pop returned seq %d, want 7", f.Seq)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after Push")
	}
}

func TestQueuePopHonorsContext(t *testing.T) {
	q := NewQueue(4, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Pop returned %v, want context.DeadlineExceeded", err)
	}
}

func TestQueueCloseDrains(t *testing.T) {
	q := NewQueue(4, nil, nil)
	q.Push(eventFrame(1))
	q.Close()

	if q.Push(eventFrame(2)) {
		t.Error("Push succeeded after Close")
	}

	ctx := context.Background()
	if f, err := q.Pop(ctx); err != nil || f.Seq != 1 {
		t.Errorf("Pop after Close = (%v, %v), want queued frame", f, err)
	}
	if _, err := q.Pop(ctx); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Pop on drained closed queue returned %v, want ErrQueueClosed", err)
	}
}
