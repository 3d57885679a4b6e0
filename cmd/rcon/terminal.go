// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/diniamo/glog"
	"github.com/pterm/pterm"

	"github.com/schultz-is/srcds-rcon"
	"github.com/schultz-is/srcds-rcon/internal/colors"
)

// runTerminal reads commands from the terminal until the user quits. Failed commands are reported
// and the session continues.
func runTerminal(client *rcon.Client, out printer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "Q",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Type 'Q' or press Ctrl-D / Ctrl-C to disconnect.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}
		if strings.EqualFold(command, "q") {
			return nil
		}

		resp, err := client.Execute(command)
		if err != nil {
			log.Errorf("%s", err)
			continue
		}
		out.print(resp)

		// The server closes the connection once it stops.
		if strings.EqualFold(command, "stop") {
			return nil
		}
	}
}

// historyFile returns where terminal history is kept, or an empty string to keep none.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rcon_history")
}

// printer writes command responses to stdout.
type printer struct {
	raw     bool
	noColor bool
	silent  bool
}

func (p printer) print(resp string) {
	if p.silent || resp == "" {
		return
	}
	if p.raw {
		pterm.Print(resp)
		return
	}

	newline := strings.HasSuffix(resp, "\n")
	if p.noColor {
		resp = colors.Strip(resp)
	} else {
		resp = colors.ToANSI(resp)
	}

	pterm.Print(resp)
	if !newline {
		pterm.Println()
	}
}
