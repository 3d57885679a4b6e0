// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package rcon

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"unicode/utf8"
)

const (
	// requestID is the ID of every authorization and command request a client sends.
	requestID int32 = 0

	// sentinelID is the ID of the empty packet sent after each command. Its echo marks the end of
	// the command response.
	sentinelID int32 = 1
)

// AuthOutcome is the result of an authorization handshake.
type AuthOutcome int

const (
	// AuthFailed means the server rejected the password.
	AuthFailed AuthOutcome = iota

	// AuthSucceeded means the session is authorized to execute commands.
	AuthSucceeded
)

func (o AuthOutcome) String() string {
	if o == AuthSucceeded {
		return "AuthenticationSucceeded"
	}
	return "AuthenticationFailed"
}

// Client is an RCON client that manages a single session with an RCON server over a [Transport].
// A session starts unauthenticated and becomes authenticated after a successful [Client.Auth]. It
// never goes back; a session ends when its transport is closed.
//
// Operations are serialized by the client, so a client may be shared, but every call holds the
// transport for a full round trip. Callers issuing many concurrent commands should use one client
// per connection.
type Client struct {
	// mu serializes whole request and response exchanges on the transport.
	mu sync.Mutex

	// transport is the byte stream RCON packets are sent and received over.
	transport Transport

	// authenticated records whether the server accepted a password on this session.
	authenticated bool

	// logger receives any log output from a client.
	logger *slog.Logger

	// logOutboundAuthPackets enables debug logging of outbound authorization request packets,
	// exposing server passwords in plaintext. See [ClientConfig.LogOutboundAuthPackets].
	logOutboundAuthPackets bool

	// strictTransportErrors makes receive errors other than timeouts fail a command instead of
	// ending its response.
	strictTransportErrors bool
}

// NewClient creates and returns a [Client] that uses t as its transport, configured by the
// provided config.
func NewClient(t Transport, config ClientConfig) *Client {
	return &Client{
		transport:              t,
		logger:                 config.Logger,
		logOutboundAuthPackets: config.LogOutboundAuthPackets,
		strictTransportErrors:  config.StrictTransportErrors,
	}
}

// Close closes the receiving client's transport if it implements [io.Closer].
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Authenticated reports whether the server has accepted a password on this session.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.authenticated
}

// Auth sends password to the RCON server to authorize the session. When the server rejects it, Auth
// returns [AuthFailed] along with an error wrapping [ErrAuthentication]. Transport and decoding
// failures return [AuthFailed] and the underlying error.
func (c *Client) Auth(password string) (AuthOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := Packet{
		ID:   requestID,
		Type: PacketTypeAuth,
		Body: []byte(password),
	}
	if err := c.send(req); err != nil {
		return AuthFailed, fmt.Errorf("rcon: sending auth request: %w", err)
	}

	if err := c.awaitEmptyResponse(); err != nil {
		return AuthFailed, fmt.Errorf("rcon: receiving auth response: %w", err)
	}

	chunk := make([]byte, MaximumPacketSize)
	if err := c.transport.Receive(chunk); err != nil {
		return AuthFailed, fmt.Errorf("rcon: receiving auth response: %w", err)
	}
	resp, err := c.decode(chunk)
	if err != nil {
		return AuthFailed, err
	}

	if resp.ID != requestID {
		return AuthFailed, fmt.Errorf("%w: server answered with ID %d", ErrAuthentication, resp.ID)
	}

	c.authenticated = true
	return AuthSucceeded, nil
}

// awaitEmptyResponse receives into an empty buffer before the authorization response is read.
// Servers send an empty [PacketTypeResponseValue] packet ahead of the [PacketTypeAuthResponse], and
// existing servers expect a client to wait on the stream once at this point.
func (c *Client) awaitEmptyResponse() error {
	return c.transport.Receive([]byte{})
}

// Execute sends command to the server and returns the complete response text, reassembled from
// as many packets as the server split it into.
//
// The response ends when the echo of the sentinel packet arrives or when a receive fails. A
// receive timeout is the expected end for servers that never echo the sentinel. Other receive
// errors also end the response unless the client was configured with
// [ClientConfig.StrictTransportErrors], so a connection lost mid-response may yield a truncated
// result.
func (c *Client) Execute(command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := Packet{
		ID:   requestID,
		Type: PacketTypeExecCommand,
		Body: []byte(command),
	}
	if err := c.send(req); err != nil {
		return "", fmt.Errorf("rcon: sending command: %w", err)
	}

	sentinel := Packet{
		ID:   sentinelID,
		Type: PacketTypeResponseValue,
	}
	if err := c.send(sentinel); err != nil {
		return "", fmt.Errorf("rcon: sending sentinel: %w", err)
	}

	body, err := c.collectResponse()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(body) {
		return "", ErrInvalidText
	}
	return string(body), nil
}

// collectResponse accumulates the bodies of response packets carrying the request ID until a
// packet with any other ID arrives or the transport stops delivering.
func (c *Client) collectResponse() ([]byte, error) {
	var body []byte
	chunk := make([]byte, MaximumPacketSize)
	for {
		clear(chunk)
		if err := c.transport.Receive(chunk); err != nil {
			if c.strictTransportErrors && !IsTimeout(err) {
				return nil, fmt.Errorf("rcon: receiving response: %w", err)
			}
			c.log(slog.LevelDebug, "response ended by receive error", slog.String("error", err.Error()))
			return body, nil
		}

		resp, err := c.decode(chunk)
		if err != nil {
			return nil, err
		}
		if resp.ID != requestID {
			return body, nil
		}
		body = append(body, resp.Body...)
	}
}

// send encodes and writes a single packet to the transport.
func (c *Client) send(p Packet) error {
	bs, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	c.logPacket("sending packet", p)
	return c.transport.Send(bs)
}

// decode reads the packet at the start of chunk.
func (c *Client) decode(chunk []byte) (Packet, error) {
	var p Packet
	if err := p.UnmarshalBinary(chunk); err != nil {
		return Packet{}, err
	}
	c.logPacket("received packet", p)
	return p, nil
}

// log sends a record to the client's logger, if there is one.
func (c *Client) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// logPacket sends a log record containing the provided log message and packet to the client's
// logger for handling. When the logger is nil or is not level set for debug records, this function
// is essentially a NOP. If the provided packet is an outbound authorization packet, its body and
// length are obfuscated to prevent leaking a plaintext password into logs.
func (c *Client) logPacket(logMsg string, packet Packet) {
	if c.logger == nil || !c.logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	// Unless the client is explicitly configured to log outbound authorization packets, scrub the
	// password when applicable.
	if packet.Type == PacketTypeAuth && !c.logOutboundAuthPackets {
		packet.Body = []byte{'x', 'x', 'x', 'x', 'x'}
	}

	bs, err := packet.MarshalBinary()
	if err != nil {
		c.log(slog.LevelError, "failed to marshal packet for logging", slog.String("error", err.Error()))
		return
	}

	c.log(slog.LevelDebug, logMsg, slog.String("packet", hex.EncodeToString(bs)))
}

// ClientConfig contains settings to control [Client] instances.
type ClientConfig struct {
	// Logger receives log entries from a client. A nil Logger disables logging.
	Logger *slog.Logger

	// LogOutboundAuthPackets is a flag that must be explicitly enabled when the client is created.
	// This field enables debug logging to include outbound authorization request packets, exposing
	// server passwords in plaintext. When this field is false (the default value,) outbound
	// authorization packets will be sanitized to hide both the password text and packet length.
	//
	// WARNING: Only enable this flag if you are aware of the implications and are willing to accept
	// the risks!
	LogOutboundAuthPackets bool

	// StrictTransportErrors makes [Client.Execute] return receive errors that are not timeouts, such
	// as a reset connection, instead of treating them as the end of the response. Leave it disabled
	// for transports that cannot tell a timeout from other failures.
	StrictTransportErrors bool
}
