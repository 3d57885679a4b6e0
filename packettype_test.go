// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon_test

import (
	"errors"
	"math"
	"testing"

	"github.com/schultz-is/srcds-rcon"
)

func TestParseRequestType(t *testing.T) {
	for code, want := range map[int32]rcon.RequestType{
		3: rcon.RequestTypeAuth,
		2: rcon.RequestTypeExecCommand,
	} {
		got, err := rcon.ParseRequestType(code)
		if err != nil {
			t.Fatalf("ParseRequestType(%d) failed unexpectedly: %s", code, err)
		}
		if got != want {
			t.Fatalf("ParseRequestType(%d) got: %s, want: %s", code, got, want)
		}
	}

	for _, code := range []int32{0, 1, 4, -1, math.MaxInt32} {
		_, err := rcon.ParseRequestType(code)
		if !errors.Is(err, rcon.ErrMalformedPacket) {
			t.Fatalf("ParseRequestType(%d) got error: %v, want: %s", code, err, rcon.ErrMalformedPacket)
		}
	}
}

func TestParseResponseType(t *testing.T) {
	for code, want := range map[int32]rcon.ResponseType{
		2: rcon.ResponseTypeAuthResponse,
		0: rcon.ResponseTypeResponseValue,
	} {
		got, err := rcon.ParseResponseType(code)
		if err != nil {
			t.Fatalf("ParseResponseType(%d) failed unexpectedly: %s", code, err)
		}
		if got != want {
			t.Fatalf("ParseResponseType(%d) got: %s, want: %s", code, got, want)
		}
	}

	// Auth is a request code only.
	for _, code := range []int32{3, 1, -1, math.MinInt32} {
		_, err := rcon.ParseResponseType(code)
		if !errors.Is(err, rcon.ErrMalformedPacket) {
			t.Fatalf("ParseResponseType(%d) got error: %v, want: %s", code, err, rcon.ErrMalformedPacket)
		}
	}
}

func TestPacketTypeStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{rcon.RequestTypeAuth.String(), "Auth"},
		{rcon.RequestTypeExecCommand.String(), "ExecCommand"},
		{rcon.RequestType(9).String(), "RequestType(9)"},
		{rcon.ResponseTypeAuthResponse.String(), "AuthResponse"},
		{rcon.ResponseTypeResponseValue.String(), "ResponseValue"},
		{rcon.ResponseType(-1).String(), "ResponseType(-1)"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("String() got: %q, want: %q", c.got, c.want)
		}
	}
}
