package ota

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/moffa90/go-esphota/rpc"
)

// Session states.
const (
	// StateIdle - no update in progress
	StateIdle = "idle"

	// StateBegan - staging area allocated, no chunk written yet
	StateBegan = "began"

	// StateTransferring - at least one chunk written
	StateTransferring = "transferring"

	// StateEnded - transfer finalized and validated by the co-processor
	StateEnded = "ended"

	// StateActivated - boot target switched, co-processor rebooting
	StateActivated = "activated"

	// StateFailed - terminal failure; a fresh Begin starts over
	StateFailed = "failed"
)

// Session transition events.
const (
	evBegin    = "begin"
	evWrite    = "write"
	evEnd      = "end"
	evActivate = "activate"
	evFail     = "fail"
)

// Session is the state container for one update attempt. It enforces the
// Begin, Write(xN), End, Activate ordering locally: an out-of-order call
// is rejected before anything reaches the wire.
//
// At most one Session should be active per dispatcher at a time; the
// protocol does not support concurrent OTA sessions. Session is not safe
// for concurrent use.
type Session struct {
	client *rpc.Client
	fsm    *fsm.FSM

	totalSize int
	bytesSent int
	chunks    int
}

// NewSession creates an idle session over client.
func NewSession(client *rpc.Client) *Session {
	if client == nil {
		panic("client cannot be nil")
	}

	return &Session{
		client: client,
		fsm: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: evBegin, Src: []string{StateIdle, StateFailed}, Dst: StateBegan},
				{Name: evWrite, Src: []string{StateBegan, StateTransferring}, Dst: StateTransferring},
				{Name: evEnd, Src: []string{StateTransferring}, Dst: StateEnded},
				{Name: evActivate, Src: []string{StateEnded}, Dst: StateActivated},
				{Name: evFail, Src: []string{StateIdle, StateBegan, StateTransferring, StateEnded}, Dst: StateFailed},
			},
			fsm.Callbacks{},
		),
	}
}

// Begin allocates a clean staging area on the co-processor for an image of
// totalSize bytes. Beginning again after a failed session is valid and
// supersedes any partial prior transfer; the byte counter restarts at zero.
func (s *Session) Begin(ctx context.Context, totalSize int) error {
	if s.fsm.Cannot(evBegin) {
		return &StateError{Operation: "begin", State: s.fsm.Current()}
	}

	if err := s.client.OtaBegin(ctx, uint32(totalSize)); err != nil {
		s.fail()
		return &BeginError{Cause: err}
	}

	_ = s.fsm.Event(evBegin)
	s.totalSize = totalSize
	s.bytesSent = 0
	s.chunks = 0
	return nil
}

// Write transfers one chunk, blocking until the co-processor acknowledges
// receipt or the call times out. A failed write is terminal for the
// session: the byte counter is preserved for diagnostics but the transfer
// cannot resume.
func (s *Session) Write(ctx context.Context, chunk []byte) error {
	if s.fsm.Cannot(evWrite) {
		return &StateError{Operation: "write", State: s.fsm.Current()}
	}

	if err := s.client.OtaWrite(ctx, chunk); err != nil {
		s.fail()
		return &WriteError{BytesSent: s.bytesSent, Cause: err}
	}

	_ = s.fsm.Event(evWrite)
	s.bytesSent += len(chunk)
	s.chunks++
	return nil
}

// End finalizes the transfer. The co-processor validates the complete
// staged image before acknowledging; a size disagreement surfaces here.
func (s *Session) End(ctx context.Context) error {
	if s.fsm.Cannot(evEnd) {
		return &StateError{Operation: "end", State: s.fsm.Current()}
	}

	if err := s.client.OtaEnd(ctx); err != nil {
		s.fail()
		return &EndError{Cause: err}
	}

	_ = s.fsm.Event(evEnd)
	return nil
}

// Activate switches the co-processor's boot target and triggers its
// reboot. Only valid after a successful End; calling it from any other
// state is rejected locally without touching the wire.
//
// This is a point of no return: the host should restart shortly afterward
// to resynchronize protocol state with the rebooting co-processor.
func (s *Session) Activate(ctx context.Context) error {
	if s.fsm.Cannot(evActivate) {
		return &StateError{Operation: "activate", State: s.fsm.Current()}
	}

	if err := s.client.OtaActivate(ctx); err != nil {
		s.fail()
		return &ActivateError{Cause: err}
	}

	_ = s.fsm.Event(evActivate)
	return nil
}

// Fail forces the session into the terminal failed state. Used when a
// collaborator outside the RPC path (e.g. the firmware source) fails
// mid-transfer.
func (s *Session) Fail() {
	s.fail()
}

func (s *Session) fail() {
	if s.fsm.Can(evFail) {
		_ = s.fsm.Event(evFail)
	}
}

// State returns the current session state.
func (s *Session) State() string {
	return s.fsm.Current()
}

// BytesSent returns the cumulative number of image bytes transferred in
// the current or last attempt.
func (s *Session) BytesSent() int {
	return s.bytesSent
}

// Chunks returns the number of write calls issued in the current or last
// attempt.
func (s *Session) Chunks() int {
	return s.chunks
}

// TotalSize returns the declared image size for the current attempt.
func (s *Session) TotalSize() int {
	return s.totalSize
}
