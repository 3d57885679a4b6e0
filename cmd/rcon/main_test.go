// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/schultz-is/srcds-rcon"
)

// echoTransport answers every command with its own text in a single fragment, followed by the
// sentinel echo.
type echoTransport struct {
	pending [][]byte
}

func (e *echoTransport) Send(b []byte) error {
	var p rcon.Packet
	if err := p.UnmarshalBinary(b); err != nil {
		return err
	}
	resp, _ := rcon.Packet{ID: p.ID, Body: p.Body}.MarshalBinary()
	e.pending = append(e.pending, resp)
	return nil
}

func (e *echoTransport) Receive(b []byte) error {
	if len(e.pending) == 0 {
		return os.ErrDeadlineExceeded
	}
	copy(b, e.pending[0])
	e.pending = e.pending[1:]
	return nil
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	t.Cleanup(func() { pterm.SetDefaultOutput(os.Stdout) })
	return &buf
}

func TestRunCommands(t *testing.T) {
	t.Run(
		"prints each response",
		func(t *testing.T) {
			buf := captureOutput(t)
			c := rcon.NewClient(&echoTransport{}, rcon.ClientConfig{})

			err := runCommands(context.Background(), c, printer{noColor: true}, []string{"§aone", "two\n"}, 0)
			if err != nil {
				t.Fatalf("runCommands failed: %s", err)
			}
			if got, want := buf.String(), "one\ntwo\n"; got != want {
				t.Fatalf("runCommands printed: %q, want: %q", got, want)
			}
		},
	)

	t.Run(
		"raw and silent output",
		func(t *testing.T) {
			buf := captureOutput(t)
			c := rcon.NewClient(&echoTransport{}, rcon.ClientConfig{})

			if err := runCommands(context.Background(), c, printer{raw: true}, []string{"§aone"}, 0); err != nil {
				t.Fatalf("runCommands failed: %s", err)
			}
			if err := runCommands(context.Background(), c, printer{silent: true}, []string{"hidden"}, 0); err != nil {
				t.Fatalf("runCommands failed: %s", err)
			}
			if got, want := buf.String(), "§aone"; got != want {
				t.Fatalf("runCommands printed: %q, want: %q", got, want)
			}
		},
	)

	t.Run(
		"cancelled while waiting",
		func(t *testing.T) {
			captureOutput(t)
			c := rcon.NewClient(&echoTransport{}, rcon.ClientConfig{})
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := runCommands(ctx, c, printer{silent: true}, []string{"a", "b"}, time.Hour)
			if err != context.Canceled {
				t.Fatalf("runCommands got error: %v, want: %s", err, context.Canceled)
			}
		},
	)
}
