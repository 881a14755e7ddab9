// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package repl implements the interactive debugger console of spec
// §4.G: command dispatch over a persistent protocol.Client, driven by
// a peterh/liner-backed input goroutine that cooperates with the
// client's receive goroutine through channels rather than the
// reference client's select()-on-stdin-with-a-timeout polling loop.
package repl

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/peterh/liner"

	"github.com/go-rdbg/rdbg/internal/protocol"
)

const prompt = "(rdbg) "

// Options configures a single REPL session, mirroring the CLI flags
// of spec.md §6.
type Options struct {
	ClientVersion string
	Autostart     bool
	File          string
	BreakAtStart  bool
}

// REPL is the console's coordinator. It owns the line editor and the
// prompt-suppression window; the protocol.Client owns the socket and
// all protocol state (spec §3's ownership rule).
type REPL struct {
	client *protocol.Client
	out    io.Writer
	line   *liner.State

	guard       suppressGuard
	listContext int

	quit      chan struct{}
	closeOnce sync.Once

	promptCh chan struct{}
	lineCh   chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// New constructs a REPL around an already-dialed client. Call Run to
// perform the handshake and enter the command loop.
func New(client *protocol.Client, out io.Writer) *REPL {
	r := &REPL{
		client:      client,
		out:         out,
		line:        liner.NewLiner(),
		listContext: 7,
		quit:        make(chan struct{}),
		promptCh:    make(chan struct{}, 1),
		lineCh:      make(chan lineResult),
	}
	r.line.SetCtrlCAborts(true)
	return r
}

// Run performs the VERSION handshake, optionally autostarts the
// debuggee, prints the startup banner, and enters the command loop
// until the user quits or the server exits (spec §4.G, §7).
func (r *REPL) Run(opts Options) error {
	r.client.SetEventSink(r)
	defer r.line.Close()

	version, err := r.client.Init(opts.ClientVersion, protocol.AddressByID)
	if err != nil {
		return err
	}

	if opts.Autostart {
		file := ""
		if opts.BreakAtStart {
			file = opts.File
		}
		if err := r.client.StartDebugger(file, 0); err != nil {
			fmt.Fprintln(r.out, err)
		}
	}

	fmt.Fprintf(r.out, "rdbg v%s\n", version)

	go r.readLoop()
	r.promptCh <- struct{}{}
	defer r.closeOnce.Do(func() { close(r.quit) })

	for {
		select {
		case res := <-r.lineCh:
			if res.err == io.EOF {
				r.runVerb("exit", "")
				return nil
			}
			if res.err == liner.ErrPromptAborted {
				r.promptCh <- struct{}{}
				continue
			}
			if res.err != nil {
				return res.err
			}

			text := strings.TrimSpace(res.text)
			if text != "" {
				r.line.AppendHistory(text)
				if stop := r.runVerb(splitVerb(text)); stop {
					return nil
				}
			}
			r.promptCh <- struct{}{}

		case <-r.quit:
			fmt.Fprint(r.out, "Leaving\nrdbg: That's all, folks...\n")
			return nil
		}
	}
}

// readLoop prints the prompt and blocks for a line only when asked to
// by the main loop via promptCh, so that a prompt never appears while
// a command is still running synchronously.
func (r *REPL) readLoop() {
	for {
		select {
		case <-r.promptCh:
		case <-r.quit:
			return
		}

		text, err := r.line.Prompt(prompt)

		select {
		case r.lineCh <- lineResult{text, err}:
		case <-r.quit:
			return
		}

		if err == io.EOF {
			return
		}
	}
}

// splitVerb separates the first whitespace-delimited token (the verb)
// from the raw remainder (the argument), which is left untokenized
// since several verbs' arguments (breakpoint specs, eval expressions)
// contain spaces of their own.
func splitVerb(line string) (verb, arg string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// runVerb looks up and executes a verb, printing any resulting error
// as a single line and continuing (spec §7: "REPL catches
// command-level errors at the command boundary"). It reports whether
// the REPL should stop.
func (r *REPL) runVerb(name, arg string) bool {
	v, ok := verbTable[name]
	if !ok {
		fmt.Fprintf(r.out, "unknown command %q; try \"help\"\n", name)
		return false
	}

	stop, err := v.run(r, arg)
	if err != nil {
		fmt.Fprintln(r.out, err)
	}
	return stop
}

// EventSink implementation.

func (r *REPL) OnThreadCreate(string, string) {}
func (r *REPL) OnThreadKill(string, string)   {}

func (r *REPL) OnThreadSuspend(file string, line int, function string) {
	msg := fmt.Sprintf("(%s:%d): %s\n", file, line, function)
	if r.guard.active() {
		fmt.Fprint(r.out, msg)
		return
	}
	fmt.Fprintf(r.out, "\n%s%s", msg, prompt)
}

func (r *REPL) OnBreakpointCreate(bp protocol.Breakpoint) {
	if !bp.Temporary {
		fmt.Fprintf(r.out, "Breakpoint %d set at line %d of file %s\n", bp.ID, bp.Line, bp.Filename)
	}
}

func (r *REPL) OnBreakpointRemove(bp protocol.Breakpoint) {
	if !bp.Temporary {
		fmt.Fprintf(r.out, "Deleted breakpoint %d\n", bp.ID)
	}
}

func (r *REPL) OnServerExit() {
	r.closeOnce.Do(func() { close(r.quit) })
}
