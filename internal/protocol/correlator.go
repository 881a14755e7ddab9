// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import (
	"sync"
	"time"

	"github.com/go-rdbg/rdbg/internal/logx"
)

// reply is what a correlator waiter receives: the fields of the
// matching incoming frame.
type reply struct {
	fields []string
}

// correlator allocates outgoing odd message identifiers and parks
// callers until a matching reply arrives or a timeout elapses. It is
// the single writer of the waiter table; the dispatcher is the single
// writer of the "deliver" side.
//
// A waiter is a buffered channel of capacity 1 rather than a flag
// polled every 10ms: the dispatcher's delivery is a non-blocking send,
// so a reply arriving after the caller gave up is simply dropped
// instead of corrupting a later exchange (spec §8, invariant 10).
type correlator struct {
	idMu   sync.Mutex
	nextID int

	waitMu  sync.Mutex
	waiters map[int]chan reply
}

func newCorrelator() *correlator {
	return &correlator{
		nextID:  1,
		waiters: make(map[int]chan reply),
	}
}

// allocate returns the next odd identifier, strictly greater than any
// previously allocated id (spec §8, invariant 1).
func (c *correlator) allocate() int {
	c.idMu.Lock()
	defer c.idMu.Unlock()

	id := c.nextID
	c.nextID += 2
	return id
}

// register installs a waiter for id before the request is sent, so
// that a reply racing the registration is never missed.
func (c *correlator) register(id int) chan reply {
	ch := make(chan reply, 1)

	c.waitMu.Lock()
	c.waiters[id] = ch
	c.waitMu.Unlock()

	return ch
}

// forget removes a waiter without requiring it to have fired; used on
// timeout so a late reply finds no registered waiter.
func (c *correlator) forget(id int) {
	c.waitMu.Lock()
	delete(c.waiters, id)
	c.waitMu.Unlock()
}

// wait blocks on ch until it is fired or timeout elapses.
func (c *correlator) wait(id int, ch chan reply, timeout time.Duration) ([]string, error) {
	select {
	case r := <-ch:
		return r.fields, nil
	case <-time.After(timeout):
		c.forget(id)
		return nil, ErrTimeout
	}
}

// deliver is called by the dispatcher for an odd (reply-lane) id. If
// no waiter is registered (already timed out, or a stray duplicate),
// the reply is logged at debug level and dropped.
func (c *correlator) deliver(id int, fields []string) {
	c.waitMu.Lock()
	ch, ok := c.waiters[id]
	if ok {
		delete(c.waiters, id)
	}
	c.waitMu.Unlock()

	if !ok {
		logx.Debug("late or unmatched reply for id %d, dropping", id)
		return
	}

	select {
	case ch <- reply{fields: fields}:
	default:
		// Caller already gave up between the lookup above and here;
		// nothing to do, this is the same "drop" outcome.
	}
}
