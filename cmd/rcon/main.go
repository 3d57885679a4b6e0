// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

// Command rcon authenticates with an RCON server and runs commands on it, either from its
// arguments or interactively.
package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"time"

	log "github.com/diniamo/glog"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"

	"github.com/schultz-is/srcds-rcon"
)

const usage = `Runs each command in order and prints its response. Without commands, starts an
interactive session. Commands containing spaces must be quoted.

Example:
  rcon -a my.server:25575 -p password -w 5s "say Server is restarting!" save-all stop`

func main() {
	cmd := cli.Command{
		Name:            "rcon",
		Usage:           "send commands to a game server over RCON",
		Description:     usage,
		ArgsUsage:       "[commands...]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "server `host:port`",
				Value:   "127.0.0.1:25575",
				Sources: cli.EnvVars("RCON_ADDRESS"),
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "RCON password",
				Required: true,
				Sources:  cli.EnvVars("RCON_PASSWORD"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "how long to wait for each response packet",
				Value:   rcon.DefaultReceiveTimeout,
				Sources: cli.EnvVars("RCON_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:  "dial-timeout",
				Usage: "how long to wait for the connection to be established",
				Value: 10 * time.Second,
			},
			&cli.DurationFlag{
				Name:    "wait",
				Aliases: []string{"w"},
				Usage:   "delay between commands",
			},
			&cli.BoolFlag{
				Name:    "terminal",
				Aliases: []string{"T"},
				Usage:   "start an interactive session after running the commands",
			},
			&cli.BoolFlag{
				Name:    "raw",
				Aliases: []string{"r"},
				Usage:   "print responses exactly as received",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"c"},
				Usage:   "strip formatting codes from responses",
			},
			&cli.BoolFlag{
				Name:    "silent",
				Aliases: []string{"s"},
				Usage:   "do not print responses",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail a command when the connection breaks mid-response",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every packet sent and received",
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	address := cmd.String("address")

	dialer := net.Dialer{Timeout: cmd.Duration("dial-timeout")}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	config := rcon.ClientConfig{StrictTransportErrors: cmd.Bool("strict")}
	if cmd.Bool("debug") {
		config.Logger = newLogger()
	}

	client := rcon.NewClient(rcon.NewConnTransport(conn, cmd.Duration("timeout")), config)
	defer client.Close()

	if _, err := client.Auth(cmd.String("password")); err != nil {
		return err
	}

	out := printer{
		raw:     cmd.Bool("raw"),
		noColor: cmd.Bool("no-color"),
		silent:  cmd.Bool("silent"),
	}

	commands := cmd.Args().Slice()
	if err := runCommands(ctx, client, out, commands, cmd.Duration("wait")); err != nil {
		return err
	}
	if len(commands) == 0 || cmd.Bool("terminal") {
		log.Successf("Logged in to %s", address)
		return runTerminal(client, out)
	}
	return nil
}

// runCommands executes commands in order, pausing for wait between them.
func runCommands(ctx context.Context, client *rcon.Client, out printer, commands []string, wait time.Duration) error {
	for i, command := range commands {
		resp, err := client.Execute(command)
		if err != nil {
			return err
		}
		out.print(resp)

		if i == len(commands)-1 || wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// newLogger returns a debug level logger that renders records through pterm on stderr.
func newLogger() *slog.Logger {
	logger := pterm.DefaultLogger.
		WithLevel(pterm.LogLevelDebug).
		WithTime(true).
		WithWriter(os.Stderr)
	logger.TimeFormat = "02 Jan 15:04:05"
	return slog.New(pterm.NewSlogHandler(logger))
}
