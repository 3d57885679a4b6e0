// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/schultz-is/srcds-rcon"
)

func ExamplePacket_WriteTo() {
	var buf bytes.Buffer

	p := rcon.Packet{
		ID:   42,
		Type: rcon.PacketTypeExecCommand,
		Body: []byte("info"),
	}
	n, err := p.WriteTo(&buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %d bytes: %0x\n", n, buf.Bytes())

	// Output:
	// Wrote 18 bytes: 0e0000002a00000002000000696e666f0000
}

func ExamplePacket_UnmarshalBinary() {
	bs, err := hex.DecodeString("0e0000002a00000002000000696e666f0000")
	if err != nil {
		log.Fatal(err)
	}

	var p rcon.Packet
	if err := p.UnmarshalBinary(bs); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Size %d: %#v\n", p.Size(), p)

	// Output:
	// Size 14: rcon.Packet{ID:42, Type:2, Body:[]uint8{0x69, 0x6e, 0x66, 0x6f}}
}

func ExampleClient_Auth() {
	// Client is a BYOC (bring your own conn) implementation.
	conn, err := net.Dial("tcp", "192.0.2.1:25575")
	if err != nil {
		log.Fatal(err)
	}

	c := rcon.NewClient(rcon.NewConnTransport(conn, time.Second), rcon.ClientConfig{})
	defer c.Close()

	if _, err := c.Auth("super secret password"); err != nil {
		log.Fatal(err)
	}
}

func ExampleClient_Execute() {
	// Client is a BYOC (bring your own conn) implementation.
	conn, err := net.Dial("tcp", "192.0.2.1:25575")
	if err != nil {
		log.Fatal(err)
	}

	c := rcon.NewClient(rcon.NewConnTransport(conn, time.Second), rcon.ClientConfig{})
	defer c.Close()

	if _, err := c.Auth("super secret password"); err != nil {
		log.Fatal(err)
	}

	result, err := c.Execute("Info")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Execute result: %q\n", result)
}
