// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package grammar

import (
	"regexp"
	"strconv"
)

var breakpointPattern = regexp.MustCompile(`^([^:]+):(?:(\d+)|([^,]+))(?:, ?(.*))?$`)

// Breakpoint is the parsed form of the `break` mini-language:
// filename ':' (lineno | scope) (',' expression)?
type Breakpoint struct {
	Filename   string
	Line       int    // 0 if Scope is set
	Scope      string // "" if Line is set
	Expression string
}

// ParseBreakpoint parses the whole remaining input of the `break`
// command. Unlike Split, this operates on the raw, un-tokenized
// string because the scope and expression fields may themselves
// contain spaces (spec §4.H).
func ParseBreakpoint(s string) (Breakpoint, error) {
	m := breakpointPattern.FindStringSubmatch(s)
	if m == nil {
		return Breakpoint{}, &ArgumentError{Reason: "does not match filename:(lineno|scope)[, expression]"}
	}

	bp := Breakpoint{Filename: m[1], Scope: m[3], Expression: m[4]}
	if m[2] != "" {
		line, err := strconv.Atoi(m[2])
		if err != nil {
			return Breakpoint{}, &ArgumentError{Reason: "invalid line number: " + m[2]}
		}
		bp.Line = line
	}
	return bp, nil
}
