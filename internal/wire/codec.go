// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package wire implements the framing and field-escaping rules of the
// debugger wire protocol: newline-terminated, tab-separated messages
// whose first two fields are a decimal command code and a decimal
// message identifier.
package wire

import (
	"html"
	"net/url"
	"strconv"
	"strings"
)

// Message is a decoded frame.
type Message struct {
	Cmd    int
	ID     int
	Fields []string
}

// Encode joins cmd, id and the given fields with tabs and terminates
// the result with a newline. A trailing empty field is appended when
// there are no payload fields, so that the separator count stays
// stable across messages with and without trailing data.
func Encode(cmd, id int, fields ...string) string {
	parts := make([]string, 0, len(fields)+2)
	parts = append(parts, strconv.Itoa(cmd), strconv.Itoa(id))
	parts = append(parts, fields...)

	if len(parts) < 3 {
		parts = append(parts, "")
	}

	return strings.Join(parts, "\t") + "\n"
}

// Decode splits a single frame (without its trailing newline) into a
// command code, message identifier, and the remaining fields.
func Decode(line string) (Message, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		return Message{}, &ProtocolError{Reason: "frame has fewer than two fields: " + line}
	}

	cmd, err := strconv.Atoi(parts[0])
	if err != nil {
		return Message{}, &ProtocolError{Reason: "non-integer command code: " + parts[0]}
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return Message{}, &ProtocolError{Reason: "non-integer message id: " + parts[1]}
	}

	return Message{Cmd: cmd, ID: id, Fields: parts[2:]}, nil
}

// ProtocolError reports a malformed frame.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "protocol error: " + e.Reason }

// Unquote performs percent-decoding followed by HTML-entity decoding,
// the inverse of how the daemon encodes text-carrying fields.
func Unquote(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}
	return html.UnescapeString(s)
}

// UnquoteTwice applies Unquote twice. The daemon double-encodes some
// fields (filenames, function names, evaluated values); this undoes
// both passes.
func UnquoteTwice(s string) string {
	return Unquote(Unquote(s))
}

// Quote is the inverse of Unquote: HTML-escape, then percent-encode.
// Exported for tests that need to build fixtures mimicking the
// daemon's own encoding.
func Quote(s string) string {
	return url.QueryEscape(htmlEscape(s))
}

// QuoteTwice is the inverse of UnquoteTwice.
func QuoteTwice(s string) string {
	return Quote(Quote(s))
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&#39;",
	)
	return replacer.Replace(s)
}
