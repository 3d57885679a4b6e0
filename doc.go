// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

/*
Package rcon provides a client for the Source RCON protocol as described by Valve Software at
https://developer.valvesoftware.com/wiki/Source_RCON_Protocol.

The protocol has no marker for the end of a command response, and servers split large responses
across several packets. After every command the [Client] sends an empty sentinel packet with a
distinct ID. Servers answer requests in order, so the echo of the sentinel arrives only after the
last fragment of the real response.

The [Client] talks to the server through a [Transport], which makes it possible to share the
protocol implementation between TCP connections ([ConnTransport]), TLS or Unix sockets, and
in-memory fakes.
*/
package rcon
