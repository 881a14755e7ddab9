// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package repl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-rdbg/rdbg/internal/grammar"
	"github.com/go-rdbg/rdbg/internal/protocol"
	"github.com/go-rdbg/rdbg/internal/source"
)

// verb is one REPL command: its canonical name, a one-line summary
// (shown by bare `help`), a full usage block (shown by `help VERB`),
// and its handler. run reports whether the REPL should stop.
type verb struct {
	name    string
	summary string
	usage   string
	run     func(r *REPL, arg string) (bool, error)
}

// verbTable maps every name and alias to its verb. Built once at
// package init from verbs below.
var verbTable = map[string]*verb{}

// verbs lists each command exactly once; aliases are attached
// separately so `help` can list the canonical name only once.
var verbs []*verb

func register(v *verb, aliases ...string) {
	verbs = append(verbs, v)
	verbTable[v.name] = v
	for _, a := range aliases {
		verbTable[a] = v
	}
}

func init() {
	register(&verb{
		name:    "start",
		summary: "Start the debugger.",
		usage:   "start\n\nStart the debugger.",
		run:     doStart,
	})

	register(&verb{
		name:    "break",
		summary: "Add a breakpoint to the debugged program.",
		usage: "break <filename>:(<lineno>|<scope>)[, <expression>]\n\n" +
			"filename:   Path to the file where the breakpoint is added.\n" +
			"lineno:     Line number of the breakpoint. Either lineno or scope\n" +
			"            must be given.\n" +
			"scope:      A scope qualifier (e.g. a function name). Either\n" +
			"            lineno or scope must be given.\n" +
			"expression: Evaluated when the breakpoint is hit; the program\n" +
			"            only stops if it evaluates true.",
		run: doBreak,
	}, "b")

	register(&verb{
		name:    "delete",
		summary: "Delete breakpoint(s).",
		usage:   "delete <id1> <id2> ... <idN>\n\nid: Id of a breakpoint to delete.",
		run:     doDelete,
	}, "d")

	register(&verb{
		name:    "enable",
		summary: "Enable breakpoint(s).",
		usage:   "enable <id1> <id2> ... <idN>\n\nid: Id of a breakpoint to enable.",
		run:     doUnimplemented(grammar.Descriptor{Repeated: grammar.Int}),
	})

	register(&verb{
		name:    "disable",
		summary: "Disable breakpoint(s).",
		usage:   "disable <id1> <id2> ... <idN>\n\nid: Id of a breakpoint to disable.",
		run:     doUnimplemented(grammar.Descriptor{Repeated: grammar.Int}),
	})

	register(&verb{
		name:    "step",
		summary: "Step into the next event.",
		usage: "step [thread name]\n\n" +
			"Behaves like `next`, except it steps into function calls.\n" +
			"thread: Defaults to the currently active thread.",
		run: doStep,
	}, "s")

	register(&verb{
		name:    "next",
		summary: "Step over a line of code.",
		usage:   "next [thread name]\n\nthread: Defaults to the currently active thread.",
		run:     doNext,
	}, "n")

	register(&verb{
		name:    "return",
		summary: "Continue execution until the end of the current function.",
		usage:   "return [thread name]\n\nthread: Defaults to the currently active thread.",
		run:     doReturn,
	}, "r")

	register(&verb{
		name:    "continue",
		summary: "Continue execution from a stopped state.",
		usage: "continue [thread name]\n\n" +
			"Execution continues until a breakpoint is hit or another stop\n" +
			"command is given. thread: Defaults to the currently active thread.",
		run: doContinue,
	}, "c")

	register(&verb{
		name:    "jump",
		summary: "Jump to a line on the current file.",
		usage:   "jump <lineno>\n\nThe debugger must be stopped to execute this command.",
		run:     doUnimplemented(grammar.Descriptor{Required: []grammar.FieldType{grammar.Int}}),
	})

	register(&verb{
		name:    "up",
		summary: "Go up a frame.",
		usage:   "up\n\nThe debugger must be stopped to go up a frame.",
		run:     doUnimplemented(grammar.Descriptor{}),
	})

	register(&verb{
		name:    "down",
		summary: "Go down a frame.",
		usage:   "down\n\nThe debugger must be stopped to go down a frame.",
		run:     doUnimplemented(grammar.Descriptor{}),
	})

	register(&verb{
		name:    "exec",
		summary: "Execute an expression in the debuggee's context.",
		usage: "exec <expression>\n\n" +
			"Unlike eval, exec may modify the debuggee's state and can\n" +
			"deadlock the debugger.",
		run: doUnimplemented(grammar.Descriptor{Required: []grammar.FieldType{grammar.String}}),
	})

	register(&verb{
		name:    "eval",
		summary: "Evaluate an expression in the debuggee's context.",
		usage:   "eval <expression>\n\nEval does not alter debuggee state; assignments are rejected.",
		run:     doEval,
	}, "e")

	register(&verb{
		name:    "list",
		summary: "List the contents of the source file at the current position.",
		usage:   "list [thread name]\n\nLists around the given (or active) thread's current line.",
		run:     doList,
	}, "l")

	register(&verb{
		name:    "thread",
		summary: "List current threads, or select the active one by index.",
		usage:   "thread [index]\n\nindex: Displayed ordinal of the thread to make active.",
		run:     doThread,
	}, "t")

	register(&verb{
		name:    "set",
		summary: "Set a REPL option.",
		usage:   "set <option> <value>\n\nKnown options: list-context.",
		run:     doSet,
	})

	register(&verb{
		name:    "help",
		summary: "Print the list of commands, or the usage of one command.",
		usage:   "help [command]",
		run:     doHelp,
	}, "h", "?")

	register(&verb{
		name:    "exit",
		summary: "Exit the debugging session.",
		usage:   "exit",
		run:     doExit,
	}, "quit", "q", "EOF")
}

func doStart(r *REPL, arg string) (bool, error) {
	release := r.guard.begin()
	defer release()

	return false, r.client.StartDebugger("", 0)
}

func doBreak(r *REPL, arg string) (bool, error) {
	bp, err := grammar.ParseBreakpoint(arg)
	if err != nil {
		return false, err
	}

	_, err = r.client.AddBreakpoint(protocol.BreakpointSpec{
		Filename:   bp.Filename,
		Line:       bp.Line,
		Scope:      bp.Scope,
		Expression: bp.Expression,
	})
	return false, err
}

func doDelete(r *REPL, arg string) (bool, error) {
	ids, err := grammar.Split(grammar.Descriptor{Repeated: grammar.Int}, arg)
	if err != nil {
		return false, err
	}

	// Open question resolved per spec.md §9: the repeated descriptor
	// applies to every listed id.
	for _, v := range ids {
		if err := r.client.RemoveBreakpoint(v.(int)); err != nil {
			return false, err
		}
	}
	return false, nil
}

func doUnimplemented(d grammar.Descriptor) func(*REPL, string) (bool, error) {
	return func(r *REPL, arg string) (bool, error) {
		if _, err := grammar.Split(d, arg); err != nil {
			return false, err
		}
		return false, ErrUnimplemented
	}
}

// progressArg parses the single optional thread-name argument shared
// by step/next/return/continue.
func progressArg(arg string) (string, error) {
	vals, err := grammar.Split(grammar.Descriptor{
		Optional: []grammar.Optional{{Type: grammar.String, Default: ""}},
	}, arg)
	if err != nil {
		return "", err
	}
	return vals[0].(string), nil
}

func doStep(r *REPL, arg string) (bool, error) {
	thread, err := progressArg(arg)
	if err != nil {
		return false, err
	}

	release := r.guard.begin()
	defer release()
	return false, r.client.StepInto(thread, false)
}

func doNext(r *REPL, arg string) (bool, error) {
	thread, err := progressArg(arg)
	if err != nil {
		return false, err
	}

	release := r.guard.begin()
	defer release()
	return false, r.client.StepOver(thread)
}

func doReturn(r *REPL, arg string) (bool, error) {
	thread, err := progressArg(arg)
	if err != nil {
		return false, err
	}

	release := r.guard.begin()
	defer release()
	return false, r.client.StepReturn(thread)
}

func doContinue(r *REPL, arg string) (bool, error) {
	thread, err := progressArg(arg)
	if err != nil {
		return false, err
	}

	release := r.guard.begin()
	defer release()
	return false, r.client.Continue(thread)
}

func doEval(r *REPL, arg string) (bool, error) {
	value, err := r.client.Evaluate(arg)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(r.out, value)
	return false, nil
}

func doList(r *REPL, arg string) (bool, error) {
	vals, err := grammar.Split(grammar.Descriptor{
		Optional: []grammar.Optional{{Type: grammar.String, Default: ""}},
	}, arg)
	if err != nil {
		return false, err
	}

	file, line, _, err := r.client.Position(vals[0].(string))
	if err != nil {
		return false, err
	}

	lines, err := source.Window(file, line, r.listContext)
	if err != nil {
		return false, err
	}

	for _, l := range lines {
		marker := "  "
		if l.Current {
			marker = "->"
		}
		fmt.Fprintf(r.out, " %3d  %s %s\n", l.Number, marker, l.Text)
	}
	return false, nil
}

func doThread(r *REPL, arg string) (bool, error) {
	vals, err := grammar.Split(grammar.Descriptor{
		Optional: []grammar.Optional{{Type: grammar.Int, Default: -1}},
	}, arg)
	if err != nil {
		return false, err
	}
	index := vals[0].(int)

	threads := r.client.Threads()
	active := r.client.ActiveThreadID()

	if index >= 0 {
		if index >= len(threads) {
			return false, fmt.Errorf("no thread at index %d", index)
		}
		r.client.SelectThread(threads[index].ID)
		return false, nil
	}

	for i, th := range threads {
		marker := " "
		if th.ID == active {
			marker = "*"
		}
		fmt.Fprintf(r.out, "  %s %-3d | %-15s | %s\n", marker, i, th.Name, th.State)
	}
	return false, nil
}

func doSet(r *REPL, arg string) (bool, error) {
	vals, err := grammar.Split(grammar.Descriptor{Required: []grammar.FieldType{grammar.String, grammar.String}}, arg)
	if err != nil {
		return false, err
	}
	option, value := vals[0].(string), vals[1].(string)

	switch strings.ToLower(strings.ReplaceAll(option, "-", "_")) {
	case "list_context":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false, err
		}
		r.listContext = n
	default:
		return false, ErrUnknownOption
	}
	return false, nil
}

func doHelp(r *REPL, arg string) (bool, error) {
	if arg != "" {
		v, ok := verbTable[arg]
		if !ok {
			fmt.Fprintln(r.out, "Not documented")
			return false, nil
		}
		fmt.Fprintln(r.out, v.usage)
		return false, nil
	}

	sorted := make([]*verb, len(verbs))
	copy(sorted, verbs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	width := 0
	for _, v := range sorted {
		if len(v.name) > width {
			width = len(v.name)
		}
	}

	fmt.Fprintln(r.out, "\nCommands (use help <command> for more info):")
	fmt.Fprintln(r.out)
	for _, v := range sorted {
		fmt.Fprintf(r.out, "%*s -- %s\n", width, v.name, v.summary)
	}
	fmt.Fprintln(r.out)
	return false, nil
}

func doExit(r *REPL, arg string) (bool, error) {
	err := r.client.KillDebugger()
	if err != nil && err != protocol.ErrNotRunning {
		return true, err
	}
	return true, nil
}
