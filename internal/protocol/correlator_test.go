// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import (
	"testing"
	"time"
)

// TestAllocateMonotonicOdd is invariant 1: every allocated id is odd
// and strictly greater than the previous one.
func TestAllocateMonotonicOdd(t *testing.T) {
	c := newCorrelator()

	prev := 0
	for i := 0; i < 5; i++ {
		id := c.allocate()
		if id%2 == 0 {
			t.Fatalf("allocate() = %d, want odd", id)
		}
		if id <= prev {
			t.Fatalf("allocate() = %d, want strictly greater than %d", id, prev)
		}
		prev = id
	}
}

// TestInterleavedReplyCorrelation is scenario S4: two in-flight calls
// are delivered out of send order, and each waiter still receives its
// own payload.
func TestInterleavedReplyCorrelation(t *testing.T) {
	c := newCorrelator()

	idA := c.allocate()
	chA := c.register(idA)
	idB := c.allocate()
	chB := c.register(idB)

	c.deliver(idB, []string{"B-payload"})
	c.deliver(idA, []string{"A-payload"})

	fieldsA, err := c.wait(idA, chA, time.Second)
	if err != nil || fieldsA[0] != "A-payload" {
		t.Fatalf("A: got (%v, %v)", fieldsA, err)
	}

	fieldsB, err := c.wait(idB, chB, time.Second)
	if err != nil || fieldsB[0] != "B-payload" {
		t.Fatalf("B: got (%v, %v)", fieldsB, err)
	}
}

// TestLateReplyDroppedAfterTimeout is invariant 10: a reply arriving
// after the caller's timeout is silently dropped and does not corrupt
// a later exchange using a different id.
func TestLateReplyDroppedAfterTimeout(t *testing.T) {
	c := newCorrelator()

	id := c.allocate()
	ch := c.register(id)

	if _, err := c.wait(id, ch, 10*time.Millisecond); err != ErrTimeout {
		t.Fatalf("got %v, want ErrTimeout", err)
	}

	// The late reply should find no waiter and simply be dropped.
	c.deliver(id, []string{"too-late"})

	nextID := c.allocate()
	nextCh := c.register(nextID)
	c.deliver(nextID, []string{"fresh"})

	fields, err := c.wait(nextID, nextCh, time.Second)
	if err != nil || fields[0] != "fresh" {
		t.Fatalf("later exchange corrupted: got (%v, %v)", fields, err)
	}
}
