// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon

import (
	"errors"
	"net"
	"os"
	"time"
)

// DefaultReceiveTimeout is how long a [ConnTransport] waits for data before a receive fails. The
// expiry of this timeout is what ends a command response when the server never echoes the sentinel
// packet, so it should be short.
const DefaultReceiveTimeout = 1 * time.Second

// Transport is the byte stream a [Client] speaks the RCON protocol over.
type Transport interface {
	// Send writes all of b to the stream.
	Send(b []byte) error

	// Receive reads available bytes into b, blocking until data arrives or a timeout configured by
	// the implementation elapses. It returns an error on timeout. Bytes in b past those received are
	// left as they were.
	Receive(b []byte) error
}

// ConnTransport is a [Transport] over a [net.Conn]. While the RCON protocol specifies transport
// over TCP, any connection works: a [crypto/tls.Conn] to a server that terminates TLS, a Unix
// socket to a server on the same machine, or a conn the caller wraps for logging and debugging.
//
// Once a conn is provided to a ConnTransport, the conn should not be used outside of the transport
// in order to ensure reliable message delivery.
type ConnTransport struct {
	conn    net.Conn
	timeout time.Duration
}

// NewConnTransport creates a [ConnTransport] that uses conn as its stream. A timeout of zero or
// less selects [DefaultReceiveTimeout].
func NewConnTransport(conn net.Conn, timeout time.Duration) *ConnTransport {
	if timeout <= 0 {
		timeout = DefaultReceiveTimeout
	}
	return &ConnTransport{
		conn:    conn,
		timeout: timeout,
	}
}

// Send writes b to the underlying connection, failing if the write does not complete within the
// transport's timeout.
func (t *ConnTransport) Send(b []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return err
	}
	_, err := t.conn.Write(b)
	return err
}

// Receive performs a single read from the underlying connection into b. A read into an empty b
// returns without consuming anything.
func (t *ConnTransport) Receive(b []byte) error {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return err
	}
	_, err := t.conn.Read(b)
	return err
}

// Close simply closes the transport's underlying connection.
func (t *ConnTransport) Close() error {
	return t.conn.Close()
}

// IsTimeout reports whether err means a transport gave up waiting, as opposed to the stream being
// broken.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
