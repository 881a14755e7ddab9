// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package source implements the two small external collaborators
// named at spec §6: locating the first executable line of a script
// (used by `start` to plant a temporary entry breakpoint) and reading
// a window of a source file (used by `list`).
package source

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

var (
	emptyLine   = regexp.MustCompile(`^\s*$`)
	commentLine = regexp.MustCompile(`^\s*#.*`)

	docstring1      = regexp.MustCompile(`^\s*""".*`)
	docstring1End   = regexp.MustCompile(`.*""".*`)
	docstring2      = regexp.MustCompile(`^\s*'''.*`)
	docstring2End   = regexp.MustCompile(`.*'''.*`)
)

// FirstExecutableLine returns the 1-based line number of the first
// statement in a Python source file: it skips blank lines, line
// comments, and a leading module docstring. For a docstring, the
// returned line is the one containing its closing delimiter, since
// that is the line pydevd will accept a breakpoint on.
func FirstExecutableLine(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var (
		inDocstring1, inDocstring2 bool
		lineNo                     int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if emptyLine.MatchString(line) || commentLine.MatchString(line) {
			continue
		}

		if inDocstring1 && docstring1End.MatchString(line) {
			return lineNo, nil
		}
		if inDocstring2 && docstring2End.MatchString(line) {
			return lineNo, nil
		}

		if !inDocstring1 && docstring1.MatchString(line) {
			rest := strings.Replace(line, `"""`, "", 1)
			if docstring1End.MatchString(rest) {
				return lineNo, nil
			}
			inDocstring1 = true
			continue
		}

		if !inDocstring2 && docstring2.MatchString(line) {
			rest := strings.Replace(line, `'''`, "", 1)
			if docstring2End.MatchString(rest) {
				return lineNo, nil
			}
			inDocstring2 = true
			continue
		}

		if inDocstring1 || inDocstring2 {
			continue
		}

		return lineNo, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return lineNo, nil
}
