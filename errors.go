// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon

import "errors"

var (
	// ErrMalformedPacket is returned when a byte buffer is too short to hold a packet header, when a
	// packet cannot be encoded, or when a numeric packet type is not a member of the expected set.
	ErrMalformedPacket = errors.New("rcon: malformed packet")

	// ErrAuthentication is returned when the server rejects an authorization request. The protocol
	// does not say why, so a wrong password is indistinguishable from any other rejection.
	ErrAuthentication = errors.New("rcon: authentication failed")

	// ErrInvalidText is returned when a reassembled command response is not valid UTF-8.
	ErrInvalidText = errors.New("rcon: response is not valid UTF-8")
)
