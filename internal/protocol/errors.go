// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import "errors"

// Error taxonomy for the protocol client, per the error handling design:
// transport errors kill the receive goroutine and raise a server-exit
// event; request-level errors return to the caller of the command API.
var (
	ErrConnectFailed     = errors.New("connect failed: timed out")
	ErrTimeout           = errors.New("no reply from server received")
	ErrCapacityExceeded  = errors.New("breakpoint limit reached")
	ErrNoThreadSelected  = errors.New("no thread selected")
	ErrNoActiveFrame     = errors.New("no active frame")
	ErrNotRunning        = errors.New("debugger not yet running")
	ErrUnknownBreakpoint = errors.New("unknown breakpoint id")
)

// ProtocolError reports a malformed frame, an unparseable XML payload,
// or a non-integer message identifier.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Reason
}
