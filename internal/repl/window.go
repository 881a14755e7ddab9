// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package repl

import (
	"sync"
	"time"
)

const promptSuppressionWindow = 100 * time.Millisecond

// suppressGuard is the scoped window of spec §9's "global mutable
// REPL state" note: an explicit field on the REPL, not hoisted to a
// package global, acquired on entry to a command expected to trigger
// an asynchronous suspend event and released on every exit path via
// defer.
type suppressGuard struct {
	mu    sync.Mutex
	until time.Time
}

// begin opens the window and returns the release function; callers
// must defer it immediately so the window still closes if the
// command itself errors out. Release keeps the window open for one
// more window duration and blocks for it (giving a suspend event
// caused by the command a chance to print before the next prompt
// appears), then closes it.
func (g *suppressGuard) begin() func() {
	g.mu.Lock()
	g.until = time.Now().Add(promptSuppressionWindow)
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		g.until = time.Now().Add(promptSuppressionWindow)
		g.mu.Unlock()

		time.Sleep(promptSuppressionWindow)

		g.mu.Lock()
		g.until = time.Time{}
		g.mu.Unlock()
	}
}

// active reports whether the window is currently open.
func (g *suppressGuard) active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return time.Now().Before(g.until)
}
