// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import (
	"strconv"

	"github.com/go-rdbg/rdbg/internal/logx"
	"github.com/go-rdbg/rdbg/internal/wire"
)

// dispatcher classifies each inbound frame by the parity of its
// message id and routes it to the reply lane (the correlator) or the
// event lane (one of the handlers below), per spec §4.C.
type dispatcher struct {
	corr    *correlator
	threads *threadTable
	bps     *breakpointTable
	sink    EventSink

	// removeBreak tells the daemon (via REMOVE_BREAK) that a temporary
	// breakpoint hit by a suspension is gone; set by Client after
	// construction. A nil value (as in tests exercising the local
	// table only) just skips the wire send.
	removeBreak func(filename string, id int) error
}

func newDispatcher(corr *correlator, threads *threadTable, bps *breakpointTable, sink EventSink) *dispatcher {
	return &dispatcher{corr: corr, threads: threads, bps: bps, sink: sink}
}

// handle processes one decoded frame. It is called only from the
// transport's single receive goroutine, so events for a given thread
// are always processed in arrival order.
func (d *dispatcher) handle(msg wire.Message) {
	if msg.ID%2 == 1 {
		d.corr.deliver(msg.ID, msg.Fields)
		return
	}

	switch msg.Cmd {
	case cmdThreadCreate:
		d.onThreadCreate(msg.Fields)
	case cmdThreadKill:
		d.onThreadKill(msg.Fields)
	case cmdThreadSuspend:
		d.onThreadSuspend(msg.Fields)
	default:
		logx.Debug("ignoring event with unhandled command code %d", msg.Cmd)
	}
}

func (d *dispatcher) onThreadCreate(fields []string) {
	if len(fields) == 0 {
		return
	}

	threads, err := parseThreads(fields[0])
	if err != nil {
		logx.Debug("THREAD_CREATE: %v", err)
		return
	}

	for _, th := range threads {
		d.threads.insert(th.ID, wire.Unquote(th.Name))
		if d.sink != nil {
			d.sink.OnThreadCreate(th.ID, wire.Unquote(th.Name))
		}
	}
}

func (d *dispatcher) onThreadKill(fields []string) {
	if len(fields) == 0 {
		return
	}

	id := fields[0]
	th, ok := d.threads.killed(id)
	if !ok {
		logx.Debug("killed nonexistent thread: %s", id)
		return
	}

	if d.sink != nil {
		d.sink.OnThreadKill(th.ID, th.Name)
	}
}

func (d *dispatcher) onThreadSuspend(fields []string) {
	if len(fields) == 0 {
		return
	}

	threads, err := parseThreads(fields[0])
	if err != nil {
		logx.Debug("THREAD_SUSPEND: %v", err)
		return
	}

	stopReasonSetBreak := strconv.Itoa(cmdSetBreak)

	for _, th := range threads {
		if len(th.Frames) == 0 {
			continue
		}

		top := th.Frames[0]
		file := wire.UnquoteTwice(top.File)
		function := wire.UnquoteTwice(top.Name)
		line, _ := strconv.Atoi(top.Line)

		frameIDs := make([]string, len(th.Frames))
		for i, f := range th.Frames {
			frameIDs[i] = f.ID
		}

		d.threads.suspend(th.ID, file, line, function, frameIDs)

		if th.StopReason == stopReasonSetBreak {
			if id, ok := d.bps.findTemporaryMatch(file, line); ok {
				if d.removeBreak != nil {
					if err := d.removeBreak(file, id); err != nil {
						logx.Debug("REMOVE_BREAK for temporary breakpoint %d: %v", id, err)
					}
				}
				if bp, err := d.bps.remove(id); err == nil && d.sink != nil {
					d.sink.OnBreakpointRemove(bp)
				}
			}
		}

		if d.sink != nil {
			d.sink.OnThreadSuspend(file, line, function)
		}
	}
}
