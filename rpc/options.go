package rpc

import "time"

// Config holds the dispatcher configuration.
type Config struct {
	// CallTimeout bounds each request/response round trip. Zero disables
	// the dispatcher-level timeout; the caller's context still applies.
	CallTimeout time.Duration

	// EventQueueDepth bounds the receive-side event queue
	EventQueueDepth int

	// OnQueueHighWater fires when the event queue crosses its high
	// watermark (optional)
	OnQueueHighWater func(depth int)

	// OnQueueLowWater fires when the event queue drains back below its low
	// watermark (optional)
	OnQueueLowWater func(depth int)
}

// defaultConfig returns the default dispatcher configuration.
func defaultConfig() Config {
	return Config{
		CallTimeout:     5 * time.Second,
		EventQueueDepth: 16,
	}
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithCallTimeout sets the per-call response timeout.
//
// Example:
//
//	client := rpc.New(device, rpc.WithCallTimeout(10*time.Second))
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.CallTimeout = timeout
	}
}

// WithEventQueueDepth bounds the receive-side event queue.
func WithEventQueueDepth(depth int) Option {
	return func(c *Config) {
		if depth > 0 {
			c.EventQueueDepth = depth
		}
	}
}

// WithQueueWatermarks registers callbacks fired when the event queue
// crosses its high watermark and when it drains below its low watermark.
//
// Example:
//
//	client := rpc.New(device, rpc.WithQueueWatermarks(
//	    func(n int) { log.Printf("event queue filling: %d", n) },
//	    func(n int) { log.Printf("event queue drained: %d", n) },
//	))
func WithQueueWatermarks(onHigh, onLow func(depth int)) Option {
	return func(c *Config) {
		c.OnQueueHighWater = onHigh
		c.OnQueueLowWater = onLow
	}
}
