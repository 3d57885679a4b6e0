// Copyright 2024 Matt Schultz <schultz@sent.com>. All rights reserved.
// Use of this source code is governed by an ISC license that can be found in the LICENSE file.

// Package colors handles the section sign formatting codes that game servers embed in command
// responses.
package colors

import "strings"

// sectionSign is the UTF-8 encoding of '§', which prefixes a one byte formatting code.
const sectionSign = "§"

const reset = "\033[0m"

var ansi = map[byte]string{
	'0': "\033[0;30m",   // black
	'1': "\033[0;34m",   // dark blue
	'2': "\033[0;32m",   // dark green
	'3': "\033[0;36m",   // dark aqua
	'4': "\033[0;31m",   // dark red
	'5': "\033[0;35m",   // dark purple
	'6': "\033[0;33m",   // gold
	'7': "\033[0;37m",   // gray
	'8': "\033[0;1;30m", // dark gray
	'9': "\033[0;1;34m", // blue
	'a': "\033[0;1;32m", // green
	'b': "\033[0;1;36m", // aqua
	'c': "\033[0;1;31m", // red
	'd': "\033[0;1;35m", // light purple
	'e': "\033[0;1;33m", // yellow
	'f': "\033[0;1;37m", // white
	'l': "\033[1m",      // bold
	'n': "\033[4m",      // underline
	'o': "\033[3m",      // italic
	'r': reset,
}

// Strip removes every formatting code from s.
func Strip(s string) string {
	return rewrite(s, func(byte) string { return "" }, false)
}

// ToANSI replaces formatting codes in s with ANSI escape sequences. Codes without an ANSI
// equivalent are dropped. Colors are reset at every line break and at the end of the text.
func ToANSI(s string) string {
	return rewrite(s, func(code byte) string { return ansi[code] }, true) + reset
}

func rewrite(s string, replace func(code byte) string, resetLines bool) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if strings.HasPrefix(s[i:], sectionSign) && i+len(sectionSign) < len(s) {
			b.WriteString(replace(s[i+len(sectionSign)]))
			i += len(sectionSign)
			continue
		}
		if resetLines && s[i] == '\n' {
			b.WriteString(reset)
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
