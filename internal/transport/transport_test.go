// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package transport

import (
	"net"
	"testing"
	"time"

	"golang.org/x/net/nettest"
)

func TestSendAndReceiveFrames(t *testing.T) {
	ln, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatalf("NewLocalListener: %v", err)
	}
	defer ln.Close()

	serverDone := make(chan struct{})
	var serverConn net.Conn
	go func() {
		defer close(serverDone)
		serverConn, _ = ln.Accept()
	}()

	tr, err := Dial("tcp", ln.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer tr.Close()

	<-serverDone
	if serverConn == nil {
		t.Fatal("server never accepted a connection")
	}
	defer serverConn.Close()

	lines := make(chan string, 4)
	closed := make(chan struct{})
	go tr.Receive(func(line string) { lines <- line }, func() { close(closed) })

	if _, err := serverConn.Write([]byte("101\t2\tfoo\n")); err != nil {
		t.Fatalf("server write: %v", err)
	}

	select {
	case line := <-lines:
		if line != "101\t2\tfoo" {
			t.Fatalf("got %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}

	if err := tr.Send("101\t1\tbar\n"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	buf := make([]byte, 64)
	serverConn.SetReadDeadline(time.Now().Add(time.Second))
	n, err := serverConn.Read(buf)
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	if got := string(buf[:n]); got != "101\t1\tbar\n" {
		t.Fatalf("server got %q", got)
	}

	serverConn.Close()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("onClose was never called after server closed the connection")
	}
}

func TestDialTimesOut(t *testing.T) {
	// 203.0.113.0/24 is TEST-NET-3, reserved for documentation and
	// guaranteed to be unroutable.
	_, err := Dial("tcp", "203.0.113.1:1", 150*time.Millisecond)
	if err != ErrConnectTimeout {
		t.Fatalf("got %v, want ErrConnectTimeout", err)
	}
}
