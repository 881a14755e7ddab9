// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package transport owns the stream socket to the debugging daemon: a
// write mutex for atomic framing of outgoing messages, and a receive
// loop that splits the incoming byte stream into newline-terminated
// frames and hands each to a caller-supplied handler.
package transport

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/go-rdbg/rdbg/internal/logx"
)

// ErrConnectTimeout is returned by Dial when the connect deadline
// elapses without a successful connection.
var ErrConnectTimeout = errors.New("connect timed out")

const retryInterval = 100 * time.Millisecond

// Transport is a connected, framed socket.
type Transport struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu sync.Mutex
}

// Dial connects to network/addr, retrying every 100ms until deadline
// elapses, per spec §4.B.
func Dial(network, addr string, deadline time.Duration) (*Transport, error) {
	start := time.Now()

	for {
		conn, err := net.DialTimeout(network, addr, retryInterval)
		if err == nil {
			return &Transport{conn: conn, reader: bufio.NewReader(conn)}, nil
		}

		if time.Since(start) >= deadline {
			return nil, ErrConnectTimeout
		}
		time.Sleep(retryInterval)
	}
}

// Send frames msg atomically with respect to other senders: the
// caller already has the full line (including its trailing newline)
// from the wire codec.
func (t *Transport) Send(msg string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	_, err := io.WriteString(t.conn, msg)
	return err
}

// Receive runs the receive loop until a read fails. Any read error,
// including EOF from a closed connection, invokes onClose and returns;
// a partial final line read before the error is still handed to
// handle. Receive is meant to
// run in its own goroutine for the lifetime of the connection; it is
// the sole reader of the socket.
func (t *Transport) Receive(handle func(line string), onClose func()) {
	for {
		line, err := t.reader.ReadString('\n')
		if len(line) > 0 {
			handle(trimNewline(line))
		}
		if err != nil {
			if err != io.EOF {
				logx.Debug("receive loop: %v", err)
			}
			onClose()
			return
		}
	}
}

// Close releases the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
