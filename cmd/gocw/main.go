// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Command gocw is a thin CLI over the legacy flat keyer API: it sends
// its argument text as Morse through the default sound sink.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/hamkit/gocw/legacy"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var wpm, freq int
	fs := flag.NewFlagSet("gocw", flag.ContinueOnError)
	fs.IntVar(&wpm, "speed", 18, "Send speed in words per minute")
	fs.IntVar(&freq, "freq", 600, "Sidetone frequency in Hz")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "gocw [flags] TEXT - send TEXT as Morse code")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	text := strings.Join(fs.Args(), " ")
	if text == "" {
		fs.Usage()
		return 2
	}

	if err := legacy.SetSpeed(wpm); err != nil {
		fmt.Fprintf(os.Stderr, "invalid speed: %v\n", err)
		return 1
	}
	if err := legacy.SetFrequency(freq); err != nil {
		fmt.Fprintf(os.Stderr, "invalid frequency: %v\n", err)
		return 1
	}

	for _, r := range text {
		if unicode.IsSpace(r) {
			r = ' '
		}
		if err := legacy.SendCharacter(r); err != nil {
			fmt.Fprintf(os.Stderr, "cannot send %q: %v\n", r, err)
			return 1
		}
	}
	return 0
}
