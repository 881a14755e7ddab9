// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package protocol implements the debugger wire protocol client: a
// persistent framed connection, request/reply correlation, a
// dispatcher demultiplexing spontaneous events, and a model of the
// debuggee's threads and breakpoints (spec §§3-4).
package protocol

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-rdbg/rdbg/internal/logx"
	"github.com/go-rdbg/rdbg/internal/source"
	"github.com/go-rdbg/rdbg/internal/transport"
	"github.com/go-rdbg/rdbg/internal/wire"
)

const (
	defaultTimeout  = 5 * time.Second
	evaluateTimeout = 10 * time.Second
)

// Client is the command API of spec §4.F. It exclusively owns the
// socket, the reply table, the thread table and the breakpoint table
// (spec §3's ownership rule); a REPL or other caller holds only a
// *Client and an EventSink.
type Client struct {
	tr   *transport.Transport
	corr *correlator
	disp *dispatcher

	threads *threadTable
	bps     *breakpointTable

	pid int // 0 until learned from the first thread listing
}

// Dial connects to the daemon at addr (host:port), retrying for up to
// timeout before giving up.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	tr, err := transport.Dial("tcp", addr, timeout)
	if err != nil {
		return nil, ErrConnectFailed
	}

	threads := newThreadTable()
	bps := newBreakpointTable()
	corr := newCorrelator()

	c := &Client{
		tr:      tr,
		corr:    corr,
		threads: threads,
		bps:     bps,
	}
	c.disp = newDispatcher(corr, threads, bps, nil)
	c.disp.removeBreak = c.sendRemoveBreak

	go tr.Receive(func(line string) {
		logx.Debug("<<< %s", line)
		msg, err := wire.Decode(line)
		if err != nil {
			logx.Debug("drop undecodable frame: %v", err)
			return
		}
		c.disp.handle(msg)
	}, c.onServerExit)

	return c, nil
}

// SetEventSink installs the REPL (or other observer) that receives
// spontaneous events. It is not required: a nil sink simply means no
// one is told.
func (c *Client) SetEventSink(sink EventSink) {
	c.disp.sink = sink
}

func (c *Client) onServerExit() {
	if c.disp.sink != nil {
		c.disp.sink.OnServerExit()
	}
}

// send issues a fire-and-forget request: the caller does not wait for
// a reply, so no waiter is registered with the correlator.
func (c *Client) send(cmd int, fields ...string) (int, error) {
	id := c.corr.allocate()
	msg := wire.Encode(cmd, id, fields...)

	logx.Debug(">>> %s", strings.TrimSuffix(msg, "\n"))
	if err := c.tr.Send(msg); err != nil {
		return id, err
	}
	return id, nil
}

func (c *Client) call(cmd int, timeout time.Duration, fields ...string) ([]string, error) {
	id := c.corr.allocate()
	ch := c.corr.register(id)
	msg := wire.Encode(cmd, id, fields...)

	logx.Debug(">>> %s", strings.TrimSuffix(msg, "\n"))
	if err := c.tr.Send(msg); err != nil {
		c.corr.forget(id)
		return nil, err
	}

	return c.corr.wait(id, ch, timeout)
}

// osKind mirrors pydevc's own os.name-based default: UNIX everywhere
// except Windows.
func osKind() string {
	if runtime.GOOS == "windows" {
		return "WINDOWS"
	}
	return "UNIX"
}

// Init performs the VERSION handshake and returns the daemon's
// reported version string.
func (c *Client) Init(clientVersion string, addressing breakpointAddressing) (string, error) {
	if addressing == "" {
		addressing = AddressByID
	}

	fields, err := c.call(cmdVersion, defaultTimeout, clientVersion, osKind(), string(addressing))
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", &ProtocolError{Reason: "VERSION reply missing server version field"}
	}
	return wire.Unquote(fields[0]), nil
}

// BreakpointSpec describes a breakpoint to add.
type BreakpointSpec struct {
	Filename   string
	Line       int    // used when Scope == ""
	Scope      string // function/scope qualifier, alternative to Line
	Condition  string
	Expression string
	Temporary  bool
}

// AddBreakpoint reserves the lowest free id, sends SET_BREAK, and
// records the breakpoint. It does not wait for a reply (spec §4.F).
func (c *Client) AddBreakpoint(spec BreakpointSpec) (int, error) {
	id, err := c.bps.reserve()
	if err != nil {
		return 0, err
	}

	lineField := ""
	if spec.Scope == "" {
		lineField = strconv.Itoa(spec.Line)
	}

	if _, err := c.send(cmdSetBreak, strconv.Itoa(id), "python-line",
		spec.Filename, lineField, spec.Scope, spec.Condition, spec.Expression); err != nil {
		c.bps.release(id)
		return 0, err
	}

	bp := Breakpoint{
		ID:         id,
		Filename:   spec.Filename,
		Line:       spec.Line,
		Scope:      spec.Scope,
		Condition:  spec.Condition,
		Expression: spec.Expression,
		Enabled:    true,
		Temporary:  spec.Temporary,
	}
	c.bps.fill(bp)

	if c.disp.sink != nil {
		c.disp.sink.OnBreakpointCreate(bp)
	}
	return id, nil
}

// RemoveBreakpoint sends REMOVE_BREAK and erases the local record.
func (c *Client) RemoveBreakpoint(id int) error {
	bp, ok := c.bps.get(id)
	if !ok {
		return ErrUnknownBreakpoint
	}

	if err := c.sendRemoveBreak(bp.Filename, id); err != nil {
		return err
	}

	removed, err := c.bps.remove(id)
	if err != nil {
		return err
	}

	if c.disp.sink != nil {
		c.disp.sink.OnBreakpointRemove(removed)
	}
	return nil
}

// sendRemoveBreak sends REMOVE_BREAK for id without touching the local
// table. It is also the dispatcher's hook for auto-removing a
// temporary breakpoint on the suspension that hits it (spec §3): the
// daemon must be told, or it keeps the breakpoint and stops there
// again (original_source/pydevc/client.py's
// __delete_if_temporary_breakpoint_hit calling remove_breakpoint).
func (c *Client) sendRemoveBreak(filename string, id int) error {
	_, err := c.send(cmdRemoveBreak, "python-line", filename, strconv.Itoa(id))
	return err
}

// StartDebugger optionally inserts a temporary breakpoint at filename
// (resolving the line via the source inspector when omitted), learns
// the debuggee's pid from the first thread listing, then sends RUN.
func (c *Client) StartDebugger(filename string, line int) error {
	if filename != "" {
		if line == 0 {
			resolved, err := source.FirstExecutableLine(filename)
			if err != nil {
				return err
			}
			line = resolved
		}

		if _, err := c.AddBreakpoint(BreakpointSpec{Filename: filename, Line: line, Temporary: true}); err != nil {
			return err
		}
	}

	if _, err := c.ListThreads(); err != nil {
		return err
	}

	_, err := c.send(cmdRun)
	return err
}

// KillDebugger delivers SIGTERM to the debuggee process, since the
// daemon in use does not honor an explicit exit verb (spec §4.F).
func (c *Client) KillDebugger() error {
	if c.pid == 0 {
		return ErrNotRunning
	}

	proc, err := os.FindProcess(c.pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}

// ListThreads refreshes thread names from LIST_THREADS, learns the
// pid on first call, and returns a filtered, ordered snapshot.
func (c *Client) ListThreads() ([]Thread, error) {
	fields, err := c.call(cmdListThreads, defaultTimeout)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &ProtocolError{Reason: "LIST_THREADS reply missing payload"}
	}

	threads, err := parseThreads(fields[0])
	if err != nil {
		return nil, err
	}

	for _, th := range threads {
		c.threads.renameOrInsert(th.ID, wire.Unquote(th.Name))

		if c.pid == 0 {
			if pid, ok := pidFromThreadID(th.ID); ok {
				c.pid = pid
			}
		}
	}

	return c.threads.list(), nil
}

// pidFromThreadID parses the pid embedded in a main-thread identifier
// of the form "<prefix>_<pid>_<suffix>".
func pidFromThreadID(id string) (int, bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return pid, true
}

// Position returns the file, line and function of a suspended
// thread's topmost frame.
func (c *Client) Position(threadName string) (file string, line int, function string, err error) {
	id, err := c.threads.resolveThread(threadName)
	if err != nil {
		return "", 0, "", err
	}

	th, ok := c.threads.get(id)
	if !ok || th.State != Suspended {
		return "", 0, "", ErrNoActiveFrame
	}
	return th.File, th.Line, th.Function, nil
}

// progress sends one of the thread-progression commands and marks the
// thread running locally (spec §4.F table).
func (c *Client) progress(cmd int, threadName string) error {
	id, err := c.threads.resolveThread(threadName)
	if err != nil {
		return err
	}

	if _, err := c.send(cmd, id); err != nil {
		return err
	}
	c.threads.setRunning(id)
	return nil
}

func (c *Client) StepOver(thread string) error { return c.progress(cmdStepOver, thread) }

// StepInto steps into a call. When myCodeOnly is set, uses the
// "smart step into" variant that skips library code.
func (c *Client) StepInto(thread string, myCodeOnly bool) error {
	cmd := cmdStepInto
	if myCodeOnly {
		cmd = cmdSmartStepInto
	}
	return c.progress(cmd, thread)
}

func (c *Client) StepReturn(thread string) error { return c.progress(cmdStepReturn, thread) }
func (c *Client) Continue(thread string) error   { return c.progress(cmdThreadRun, thread) }

// Evaluate evaluates expr in the topmost frame of the active thread.
func (c *Client) Evaluate(expr string) (string, error) {
	id := c.threads.activeID()
	if id == "" {
		return "", ErrNoThreadSelected
	}

	th, ok := c.threads.get(id)
	if !ok || len(th.Frames) == 0 {
		return "", ErrNoActiveFrame
	}

	fields, err := c.call(cmdEvaluateExpression, evaluateTimeout,
		id, th.Frames[0], "", expr, "1")
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", &ProtocolError{Reason: "EVALUATE_EXPRESSION reply missing payload"}
	}

	value, err := parseValue(fields[0])
	if err != nil {
		return "", err
	}
	return wire.UnquoteTwice(value), nil
}

// Threads returns the current filtered, ordered thread snapshot
// without issuing a LIST_THREADS request.
func (c *Client) Threads() []Thread {
	return c.threads.list()
}

// ActiveThreadID returns the currently selected thread id, or "" if
// none is selected.
func (c *Client) ActiveThreadID() string {
	return c.threads.activeID()
}

// SelectThread sets the active thread directly by id (used by the
// REPL's ordinal-index "thread N" command).
func (c *Client) SelectThread(id string) {
	c.threads.setActiveID(id)
}

// Breakpoints returns a copy of all live breakpoints.
func (c *Client) Breakpoints() []Breakpoint {
	return c.bps.list()
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.tr.Close()
}
