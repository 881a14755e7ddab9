// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFirstExecutableLineSkipsBlankAndComments(t *testing.T) {
	path := writeTemp(t, "\n\n# a comment\nx = 1\n")

	line, err := FirstExecutableLine(path)
	if err != nil {
		t.Fatal(err)
	}
	if line != 4 {
		t.Fatalf("got %d, want 4", line)
	}
}

func TestFirstExecutableLineStopsAtDocstringClose(t *testing.T) {
	// 2 blank lines, a 3-line docstring, a comment, then a statement.
	path := writeTemp(t, "\n\n\"\"\"\nmodule docs\n\"\"\"\n# comment\nx = 1\n")

	line, err := FirstExecutableLine(path)
	if err != nil {
		t.Fatal(err)
	}
	if line != 5 {
		t.Fatalf("got %d, want 5 (the docstring's closing line)", line)
	}
}

func TestFirstExecutableLineSingleLineDocstring(t *testing.T) {
	path := writeTemp(t, "\"\"\"one line docstring\"\"\"\nx = 1\n")

	line, err := FirstExecutableLine(path)
	if err != nil {
		t.Fatal(err)
	}
	if line != 1 {
		t.Fatalf("got %d, want 1", line)
	}
}

func TestFirstExecutableLineNoDocstring(t *testing.T) {
	path := writeTemp(t, "import os\n\nprint(os.getcwd())\n")

	line, err := FirstExecutableLine(path)
	if err != nil {
		t.Fatal(err)
	}
	if line != 1 {
		t.Fatalf("got %d, want 1", line)
	}
}

func TestWindow(t *testing.T) {
	path := writeTemp(t, "1\n2\n3\n4\n5\n6\n7\n")

	lines, err := Window(path, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[0].Number != 2 || lines[len(lines)-1].Number != 6 {
		t.Fatalf("got range [%d, %d], want [2, 6]", lines[0].Number, lines[len(lines)-1].Number)
	}

	var foundCurrent bool
	for _, l := range lines {
		if l.Current {
			if l.Number != 4 {
				t.Fatalf("current line marked at %d, want 4", l.Number)
			}
			foundCurrent = true
		}
	}
	if !foundCurrent {
		t.Fatal("no line marked current")
	}
}

func TestWindowClampsAtFileStart(t *testing.T) {
	path := writeTemp(t, "1\n2\n3\n")

	lines, err := Window(path, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0].Number != 1 {
		t.Fatalf("got start %d, want 1", lines[0].Number)
	}
}
