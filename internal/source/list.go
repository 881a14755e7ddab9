// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package source

import (
	"bufio"
	"os"
)

// Line is a single source line with its 1-based number and whether it
// is the current line (marked "->" by the `list` command).
type Line struct {
	Number  int
	Text    string
	Current bool
}

// Window reads the lines of path from max(1, around-context) through
// around+context, inclusive, marking the around line as current. File
// handles are scoped to this call (spec §5).
func Window(path string, around, context int) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	begin := around - context
	if begin < 1 {
		begin = 1
	}
	end := around + context

	var out []Line
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		if lineNo < begin {
			continue
		}
		if lineNo > end {
			break
		}
		out = append(out, Line{Number: lineNo, Text: scanner.Text(), Current: lineNo == around})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
