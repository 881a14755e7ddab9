// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import "testing"

func TestParseThreadsBareRoot(t *testing.T) {
	threads, err := parseThreads(`<thread id="t1" name="Main" stop_reason=""></thread>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) != 1 || threads[0].ID != "t1" {
		t.Fatalf("got %+v", threads)
	}
}

func TestParseThreadsWrappedRoot(t *testing.T) {
	threads, err := parseThreads(`<xml><thread id="t1" name="A" stop_reason=""></thread><thread id="t2" name="B" stop_reason=""></thread></xml>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) != 2 {
		t.Fatalf("got %d threads, want 2", len(threads))
	}
}

func TestParseThreadsRejectsEmptyPayload(t *testing.T) {
	if _, err := parseThreads(`<xml></xml>`); err == nil {
		t.Fatal("expected error for payload with no <thread> elements")
	}
}

func TestParseValueBareRoot(t *testing.T) {
	v, err := parseValue(`<value value="42"></value>`)
	if err != nil {
		t.Fatal(err)
	}
	if v != "42" {
		t.Fatalf("got %q, want 42", v)
	}
}

func TestParseValueWrappedRoot(t *testing.T) {
	v, err := parseValue(`<xml><value value="hello"></value></xml>`)
	if err != nil {
		t.Fatal(err)
	}
	if v != "hello" {
		t.Fatalf("got %q, want hello", v)
	}
}
