// Package link provides the medium-specific plumbing below the frame
// layer: a serial port adapter and bounded frame queues with watermark
// signaling.
//
// The dispatcher above this package only needs an io.ReadWriter, so any
// medium (UART, USB CDC, a pseudo-terminal, or an in-memory pipe in tests)
// can carry the protocol. Serial is the production adapter.
//
// Queue is single-consumer: one goroutine calls Pop while the link reader
// calls Push.
package link
