// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package wire

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]string{
		{"main.py", "42"},
		{},
		{"a", "b", "c"},
	}

	for _, fields := range cases {
		line := Encode(101, 1, fields...)
		if !strings.HasSuffix(line, "\n") {
			t.Fatalf("Encode(%v) did not end in newline: %q", fields, line)
		}

		msg, err := Decode(strings.TrimSuffix(line, "\n"))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if msg.Cmd != 101 || msg.ID != 1 {
			t.Fatalf("got cmd=%d id=%d, want 101,1", msg.Cmd, msg.ID)
		}

		want := fields
		if len(want) == 0 {
			want = []string{""}
		}
		if len(msg.Fields) != len(want) {
			t.Fatalf("got fields %v, want %v", msg.Fields, want)
		}
		for i := range want {
			if msg.Fields[i] != want[i] {
				t.Fatalf("field %d: got %q want %q", i, msg.Fields[i], want[i])
			}
		}
	}
}

func TestEncodeTrailingSeparatorStable(t *testing.T) {
	withPayload := Encode(101, 1, "x")
	withoutPayload := Encode(101, 1)

	if strings.Count(withPayload, "\t") != strings.Count(withoutPayload, "\t") {
		t.Fatalf("separator count differs: %q vs %q", withPayload, withoutPayload)
	}
}

func TestDecodeRejectsNonIntegerCmd(t *testing.T) {
	if _, err := Decode("nope\t1\t"); err == nil {
		t.Fatal("expected error for non-integer command code")
	}
}

func TestDecodeRejectsNonIntegerID(t *testing.T) {
	if _, err := Decode("101\tnope\t"); err == nil {
		t.Fatal("expected error for non-integer message id")
	}
}

func TestUnquoteTwice(t *testing.T) {
	cases := []string{
		"/home/user/my file.py",
		"simple",
		"a&amp;b",
		"100%done",
	}

	for _, s := range cases {
		quoted := QuoteTwice(s)
		got := UnquoteTwice(quoted)
		if got != s {
			t.Fatalf("UnquoteTwice(QuoteTwice(%q)) = %q", s, got)
		}
	}
}
