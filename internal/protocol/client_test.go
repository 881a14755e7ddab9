// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import "testing"

// TestEvaluateWithoutFrames is scenario S5: the active thread exists
// but is RUNNING (no frames), so evaluate fails with ErrNoActiveFrame.
func TestEvaluateWithoutFrames(t *testing.T) {
	threads := newThreadTable()
	threads.insert("t1", "MainThread")

	c := &Client{threads: threads, bps: newBreakpointTable(), corr: newCorrelator()}

	if _, err := c.Evaluate("1 + 1"); err != ErrNoActiveFrame {
		t.Fatalf("got %v, want ErrNoActiveFrame", err)
	}
}

func TestEvaluateWithNoThreadSelected(t *testing.T) {
	c := &Client{threads: newThreadTable(), bps: newBreakpointTable(), corr: newCorrelator()}

	if _, err := c.Evaluate("1 + 1"); err != ErrNoThreadSelected {
		t.Fatalf("got %v, want ErrNoThreadSelected", err)
	}
}

func TestPositionRequiresSuspendedThread(t *testing.T) {
	threads := newThreadTable()
	threads.insert("t1", "MainThread")
	c := &Client{threads: threads, bps: newBreakpointTable(), corr: newCorrelator()}

	if _, _, _, err := c.Position(""); err != ErrNoActiveFrame {
		t.Fatalf("got %v, want ErrNoActiveFrame", err)
	}

	threads.suspend("t1", "x.py", 10, "main", []string{"f1"})
	file, line, fn, err := c.Position("")
	if err != nil || file != "x.py" || line != 10 || fn != "main" {
		t.Fatalf("got (%q, %d, %q, %v)", file, line, fn, err)
	}
}

func TestPidFromThreadID(t *testing.T) {
	cases := []struct {
		id      string
		wantPid int
		wantOK  bool
	}{
		{"pydevd.MainThread_1234_1", 1234, true},
		{"no-underscore", 0, false},
		{"prefix_notanumber_suffix", 0, false},
	}

	for _, tc := range cases {
		pid, ok := pidFromThreadID(tc.id)
		if pid != tc.wantPid || ok != tc.wantOK {
			t.Errorf("pidFromThreadID(%q) = (%d, %v), want (%d, %v)", tc.id, pid, ok, tc.wantPid, tc.wantOK)
		}
	}
}
