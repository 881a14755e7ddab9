// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Command rdbg is the interactive console for the pydevd wire
// protocol (spec §6): dial a debugger daemon, perform the VERSION
// handshake, and hand off to the REPL until the user quits or the
// daemon exits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-rdbg/rdbg/internal/logx"
	"github.com/go-rdbg/rdbg/internal/protocol"
	"github.com/go-rdbg/rdbg/internal/repl"
)

const clientVersion = "1.0"

const connectTimeout = 5 * time.Second

var (
	server       string
	port         int
	file         string
	autostart    bool
	breakAtStart bool
	syncFlag     bool
)

// Options with a short name (-s, -p, -f) are registered under both
// their short and long name, per spec.md §6, pointing at the same
// variable; the remaining options have a long name only.
func init() {
	flag.StringVar(&server, "s", "localhost", "debugger host")
	flag.StringVar(&server, "server", "localhost", "debugger host")
	flag.IntVar(&port, "p", 5678, "debugger port")
	flag.IntVar(&port, "port", 5678, "debugger port")
	flag.StringVar(&file, "f", "", "initial script to debug")
	flag.StringVar(&file, "file", "", "initial script to debug")
	flag.BoolVar(&autostart, "autostart", false, "start execution on connect")
	flag.BoolVar(&breakAtStart, "break-at-start", false, "with -autostart, insert a temporary breakpoint at the first executable line of -file; no effect without -autostart")
	flag.BoolVar(&syncFlag, "sync", false, "reserved, parsed and ignored")
}

func main() {
	flag.Parse()
	logx.Init()

	addr := fmt.Sprintf("%s:%d", server, port)
	client, err := protocol.Dial(addr, connectTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer client.Close()

	r := repl.New(client, os.Stdout)
	if err := r.Run(repl.Options{
		ClientVersion: clientVersion,
		Autostart:     autostart,
		File:          file,
		BreakAtStart:  breakAtStart,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
