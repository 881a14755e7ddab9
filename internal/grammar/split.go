// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package grammar implements the REPL's typed-argument splitter and
// the breakpoint mini-language parser (spec §4.H). The splitter is a
// descriptor-driven replacement for the reference client's runtime
// inspection of a function's declared defaults: a verb declares
// {Required, Optional, Repeated} up front, and no reflection is
// needed to decide whether enough arguments were given.
package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgumentError is raised when user input fails a verb's grammar.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string { return e.Reason }

// FieldType converts a single raw argument string into its typed
// form, returning an error if the conversion fails.
type FieldType func(raw string) (interface{}, error)

// String accepts any non-empty token as-is.
func String(raw string) (interface{}, error) { return raw, nil }

// Int parses a base-10 integer.
func Int(raw string) (interface{}, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ArgumentError{Reason: fmt.Sprintf("not an integer: %q", raw)}
	}
	return n, nil
}

// Optional pairs a type with the default value used when the
// argument is omitted.
type Optional struct {
	Type    FieldType
	Default interface{}
}

// Descriptor declares a verb's positional argument shape: Required
// types must all be supplied; Optional types may be omitted from the
// tail, each falling back to its own default; Repeated, if set,
// applies one type to every positional (Required/Optional must be
// empty in that case).
type Descriptor struct {
	Required []FieldType
	Optional []Optional
	Repeated FieldType
}

// Split tokenizes arg on whitespace-runs and coerces each token per
// d, returning the typed positional values in order.
func Split(d Descriptor, arg string) ([]interface{}, error) {
	var tokens []string
	if strings.TrimSpace(arg) != "" {
		tokens = strings.Fields(arg)
	}

	if d.Repeated != nil {
		out := make([]interface{}, len(tokens))
		for i, tok := range tokens {
			v, err := d.Repeated(tok)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	total := len(d.Required) + len(d.Optional)
	if len(tokens) > total {
		return nil, &ArgumentError{Reason: "too many arguments provided"}
	}
	if len(tokens) < len(d.Required) {
		return nil, &ArgumentError{Reason: "wrong number of arguments"}
	}

	out := make([]interface{}, 0, total)
	for i, t := range d.Required {
		v, err := t(tokens[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	for i, opt := range d.Optional {
		idx := len(d.Required) + i
		if idx >= len(tokens) {
			out = append(out, opt.Default)
			continue
		}
		v, err := opt.Type(tokens[idx])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
