// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WrapperSize is the cumulative size of non-body bytes that contribute to calculation of the packet
// size that precedes a binary packet. Eight bytes are accounted for by the packet ID and type,
// while two bytes are accounted for by the null byte termination of the body and packet. The packet
// size itself is not included in the size calculation.
const WrapperSize = 8 + 2

// HeaderSize is the number of bytes needed to read the size, ID and type fields of a packet.
const HeaderSize = 4 + 4 + 4

// MaximumPacketSize is the largest packet size a server sends in a single packet. It is also the
// size of the chunk a [Client] reads from its transport at a time.
const MaximumPacketSize = 4096

const (
	// PacketTypeAuth represents a client authorization request packet. It indicates that the body
	// will contain the server password.
	PacketTypeAuth = 3

	// PacketTypeAuthResponse represents a server authorization response packet. If authorization
	// failed, the packet ID will not match that of the client request packet.
	PacketTypeAuthResponse = 2

	// PacketTypeExecCommand represents a client request packet that contains a command to be executed
	// by the server.
	PacketTypeExecCommand = 2

	// PacketTypeResponseValue represents a server response packet that contains the output of a
	// server command initiated by a [PacketTypeExecCommand] client request packet.
	PacketTypeResponseValue = 0
)

// Packet is a singular RCON protocol packet, either as a request from a client or a response from
// a server.
type Packet struct {
	// ID is chosen by the client and echoed by the server, which lets a client correlate responses
	// with requests. Some servers answer a rejected authorization with an ID of -1.
	ID int32

	// Type is the raw type code. Whether it means a [RequestType] or a [ResponseType] depends on the
	// direction the packet travels.
	Type int32

	// Body is the password, the command, or the server's response text. It is not validated as
	// UTF-8 and may be empty.
	Body []byte
}

// Size returns the value of the size field that precedes the packet on the wire: the number of
// bytes in the ID, type, body and trailer.
func (p Packet) Size() int {
	return len(p.Body) + WrapperSize
}

// MarshalBinary encodes the receiving [Packet] into binary form and returns the result. This
// satisfies the [encoding.BinaryMarshaler] interface.
func (p Packet) MarshalBinary() ([]byte, error) {
	if len(p.Body) > math.MaxInt32-WrapperSize {
		return nil, fmt.Errorf("%w: body of %d bytes does not fit the size field", ErrMalformedPacket, len(p.Body))
	}
	size := p.Size()

	b := make([]byte, 0, size+4)
	b = binary.LittleEndian.AppendUint32(b, uint32(size))
	b = binary.LittleEndian.AppendUint32(b, uint32(p.ID))
	b = binary.LittleEndian.AppendUint32(b, uint32(p.Type))
	b = append(b, p.Body...)
	b = append(b, 0, 0)

	return b, nil
}

// WriteTo writes a binary representation of the packet to [io.Writer] w. This method satisfies the
// [io.WriterTo] interface.
func (p Packet) WriteTo(w io.Writer) (int64, error) {
	bs, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(bs)

	return int64(n), err
}

// UnmarshalBinary decodes the binary encoded packet b into the receiving [Packet]. This satisfies
// the [encoding.BinaryUnmarshaler] interface.
//
// The buffer may hold less or more than the packet it starts with, as happens when b is a fixed
// size chunk read from a stream. The body is clamped to the bytes actually present, and anything
// after the body, the trailer included, is ignored. A buffer shorter than [HeaderSize] produces an
// error wrapping [ErrMalformedPacket].
func (p *Packet) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: need %d header bytes, got %d", ErrMalformedPacket, HeaderSize, len(b))
	}

	size := int32(binary.LittleEndian.Uint32(b[0:4]))
	p.ID = int32(binary.LittleEndian.Uint32(b[4:8]))
	p.Type = int32(binary.LittleEndian.Uint32(b[8:12]))

	rest := b[HeaderSize:]
	n := 0
	if size > WrapperSize {
		n = int(size - WrapperSize)
	}
	n = min(n, len(rest))
	p.Body = bytes.Clone(rest[:n])

	return nil
}

// ReadFrom reads exactly one framed packet from r into the receiving [Packet]. Unlike
// [Packet.UnmarshalBinary], the frame is validated strictly: the size must be within protocol
// limits and the body must be followed by two null bytes. This method satisfies the
// [io.ReaderFrom] interface.
func (p *Packet) ReadFrom(r io.Reader) (int64, error) {
	// Keep track of bytes read.
	n := int64(0)

	var sizeField [4]byte
	read, err := io.ReadFull(r, sizeField[:])
	n += int64(read)
	if err != nil {
		return n, err
	}

	packetSize := int32(binary.LittleEndian.Uint32(sizeField[:]))
	if packetSize < WrapperSize {
		return n, fmt.Errorf("%w: packet size %d too small", ErrMalformedPacket, packetSize)
	}
	if packetSize > MaximumPacketSize {
		return n, fmt.Errorf("%w: packet size %d too large", ErrMalformedPacket, packetSize)
	}

	frame := make([]byte, packetSize)
	read, err = io.ReadFull(r, frame)
	n += int64(read)
	if err != nil {
		return n, err
	}

	trailer := frame[packetSize-2:]
	if trailer[0] != 0 || trailer[1] != 0 {
		return n, fmt.Errorf("%w: packet incorrectly terminated", ErrMalformedPacket)
	}

	p.ID = int32(binary.LittleEndian.Uint32(frame[0:4]))
	p.Type = int32(binary.LittleEndian.Uint32(frame[4:8]))
	p.Body = frame[8 : packetSize-2]

	return n, nil
}

// EqualTo determines if the provided Packet content matches the receiving Packet content.
func (p Packet) EqualTo(p2 Packet) bool {
	switch {
	case p.ID != p2.ID:
		return false
	case p.Type != p2.Type:
		return false
	case !bytes.Equal(p.Body, p2.Body):
		return false
	}
	return true
}

// Clone returns a copy of the packet that shares no memory with the original.
func (p Packet) Clone() Packet {
	p.Body = bytes.Clone(p.Body)
	return p
}
