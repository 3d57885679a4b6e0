// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon

import (
	"fmt"
	"strconv"
)

// RequestType is the type code of a packet sent by a client.
type RequestType int32

const (
	// RequestTypeAuth carries the server password in its body.
	RequestTypeAuth RequestType = PacketTypeAuth

	// RequestTypeExecCommand carries a command to be executed by the server.
	RequestTypeExecCommand RequestType = PacketTypeExecCommand
)

// ParseRequestType translates a raw type code into a [RequestType]. Codes outside the request set
// produce an error wrapping [ErrMalformedPacket].
func ParseRequestType(code int32) (RequestType, error) {
	switch t := RequestType(code); t {
	case RequestTypeAuth, RequestTypeExecCommand:
		return t, nil
	}
	return 0, fmt.Errorf("%w: unknown request type %d", ErrMalformedPacket, code)
}

func (t RequestType) String() string {
	switch t {
	case RequestTypeAuth:
		return "Auth"
	case RequestTypeExecCommand:
		return "ExecCommand"
	}
	return "RequestType(" + strconv.Itoa(int(t)) + ")"
}

// ResponseType is the type code of a packet sent by a server.
type ResponseType int32

const (
	// ResponseTypeAuthResponse answers a [RequestTypeAuth] packet.
	ResponseTypeAuthResponse ResponseType = PacketTypeAuthResponse

	// ResponseTypeResponseValue carries command output. Clients also send it, empty, as the sentinel
	// that marks the end of a command response.
	ResponseTypeResponseValue ResponseType = PacketTypeResponseValue
)

// ParseResponseType translates a raw type code into a [ResponseType]. Codes outside the response
// set produce an error wrapping [ErrMalformedPacket].
func ParseResponseType(code int32) (ResponseType, error) {
	switch t := ResponseType(code); t {
	case ResponseTypeAuthResponse, ResponseTypeResponseValue:
		return t, nil
	}
	return 0, fmt.Errorf("%w: unknown response type %d", ErrMalformedPacket, code)
}

func (t ResponseType) String() string {
	switch t {
	case ResponseTypeAuthResponse:
		return "AuthResponse"
	case ResponseTypeResponseValue:
		return "ResponseValue"
	}
	return "ResponseType(" + strconv.Itoa(int(t)) + ")"
}
