// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestMultilog(t *testing.T) {
	sink1 := new(bytes.Buffer)
	sink2 := new(bytes.Buffer)

	AddLogger("sink1", sink1, DEBUG)
	defer DelLogger("sink1")
	AddLogger("sink2", sink2, DEBUG)
	defer DelLogger("sink2")

	Debugln("test 123")

	if !strings.Contains(sink1.String(), "test 123") {
		t.Fatalf("sink1 got: %q", sink1.String())
	}
	if !strings.Contains(sink2.String(), "test 123") {
		t.Fatalf("sink2 got: %q", sink2.String())
	}
}

func TestLogLevels(t *testing.T) {
	sink1 := new(bytes.Buffer)
	sink2 := new(bytes.Buffer)

	AddLogger("sink1Level", sink1, DEBUG)
	defer DelLogger("sink1Level")
	AddLogger("sink2Level", sink2, INFO)
	defer DelLogger("sink2Level")

	Debugln("test 123")

	if !strings.Contains(sink1.String(), "test 123") {
		t.Fatalf("sink1 got: %q", sink1.String())
	}
	if sink2.Len() != 0 {
		t.Fatalf("sink2 got: %q", sink2.String())
	}
}

func TestDelLogger(t *testing.T) {
	sink := new(bytes.Buffer)

	AddLogger("sinkDel", sink, DEBUG)
	Debug("test 123")

	if !strings.Contains(sink.String(), "test 123") {
		t.Fatalf("sink got: %q", sink.String())
	}

	DelLogger("sinkDel")
	sink.Reset()
	Debug("test 456")

	if sink.Len() != 0 {
		t.Fatalf("expected no further output, got: %q", sink.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DEBUG,
		"info":  INFO,
		"warn":  WARN,
		"error": ERROR,
		"fatal": FATAL,
	}
	for s, want := range cases {
		got, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
