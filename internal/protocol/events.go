// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

// EventSink is the capability the REPL implements to observe
// spontaneous protocol events. The client holds exactly one sink (set
// via Client.SetEventSink), not a map of named callback functions, so
// that dispatch is not stringly-typed and the sink's lifetime is tied
// to the REPL that owns it (spec §9).
//
// Handlers are invoked after the table lock that produced their
// arguments has been released, so a handler may safely call back into
// the client without re-entrance.
type EventSink interface {
	OnThreadCreate(id, name string)
	OnThreadKill(id, name string)
	OnThreadSuspend(file string, line int, function string)
	OnBreakpointCreate(bp Breakpoint)
	OnBreakpointRemove(bp Breakpoint)
	OnServerExit()
}

// NopEventSink implements EventSink with no-ops, useful for tests and
// for callers that only want some of the callbacks (embed it and
// override the rest).
type NopEventSink struct{}

func (NopEventSink) OnThreadCreate(string, string)        {}
func (NopEventSink) OnThreadKill(string, string)          {}
func (NopEventSink) OnThreadSuspend(string, int, string)  {}
func (NopEventSink) OnBreakpointCreate(Breakpoint)        {}
func (NopEventSink) OnBreakpointRemove(Breakpoint)        {}
func (NopEventSink) OnServerExit()                        {}
