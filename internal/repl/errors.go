// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package repl

import "errors"

var (
	// ErrUnknownOption is returned by `set` for an unrecognized option
	// name (spec.md §7).
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnimplemented is returned by verbs the reference client
	// declared but never implemented (spec.md §9 open question):
	// enable, disable, jump, up, down, exec.
	ErrUnimplemented = errors.New("not implemented")
)
