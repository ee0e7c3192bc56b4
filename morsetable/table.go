// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package morsetable maps runes to their International Morse (ITU-R
// M.1677-1, "Paris" timing) dot/dash representations and back.
package morsetable

import (
	"errors"
	"strings"
	"unicode"

	"github.com/hamkit/gocw/key"
)

// ErrNotRepresentable is returned by ToChar for a representation with no
// entry in the table (Lookup reports a missing rune with ok=false).
var ErrNotRepresentable = errors.New("morsetable: not representable")

var charToRepr = map[rune][]key.Symbol{
	'A': {key.SymbolDot, key.SymbolDash},
	'B': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'C': {key.SymbolDash, key.SymbolDot, key.SymbolDash, key.SymbolDot},
	'D': {key.SymbolDash, key.SymbolDot, key.SymbolDot},
	'E': {key.SymbolDot},
	'F': {key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDot},
	'G': {key.SymbolDash, key.SymbolDash, key.SymbolDot},
	'H': {key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'I': {key.SymbolDot, key.SymbolDot},
	'J': {key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDash},
	'K': {key.SymbolDash, key.SymbolDot, key.SymbolDash},
	'L': {key.SymbolDot, key.SymbolDash, key.SymbolDot, key.SymbolDot},
	'M': {key.SymbolDash, key.SymbolDash},
	'N': {key.SymbolDash, key.SymbolDot},
	'O': {key.SymbolDash, key.SymbolDash, key.SymbolDash},
	'P': {key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDot},
	'Q': {key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDash},
	'R': {key.SymbolDot, key.SymbolDash, key.SymbolDot},
	'S': {key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'T': {key.SymbolDash},
	'U': {key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'V': {key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'W': {key.SymbolDot, key.SymbolDash, key.SymbolDash},
	'X': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'Y': {key.SymbolDash, key.SymbolDot, key.SymbolDash, key.SymbolDash},
	'Z': {key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDot},
	'0': {key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDash},
	'1': {key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDash},
	'2': {key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDash},
	'3': {key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDash},
	'4': {key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'5': {key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'6': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'7': {key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDot},
	'8': {key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDot},
	'9': {key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDash, key.SymbolDot},
	'.': {key.SymbolDot, key.SymbolDash, key.SymbolDot, key.SymbolDash, key.SymbolDot, key.SymbolDash},
	',': {key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDash},
	'?': {key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDot},
	'/': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDash, key.SymbolDot},
	'=': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'-': {key.SymbolDash, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDot, key.SymbolDash},
	'+': {key.SymbolDot, key.SymbolDash, key.SymbolDot, key.SymbolDash, key.SymbolDot},
	'@': {key.SymbolDot, key.SymbolDash, key.SymbolDash, key.SymbolDot, key.SymbolDash, key.SymbolDot},
}

var reprToChar map[string]rune

func init() {
	reprToChar = make(map[string]rune, len(charToRepr))
	for r, repr := range charToRepr {
		reprToChar[reprKey(repr)] = r
	}
}

func reprKey(repr []key.Symbol) string {
	var b strings.Builder
	for _, s := range repr {
		if s == key.SymbolDot {
			b.WriteByte('.')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Lookup returns the Dot/Dash representation for r (case-folded to
// upper-case), or ok=false if r has no entry.
func Lookup(r rune) (repr []key.Symbol, ok bool) {
	repr, ok = charToRepr[unicode.ToUpper(r)]
	return
}

// ToChar reverses Lookup: given a sequence of Dot/Dash symbols (Space
// entries, if present, are ignored), it returns the matching character.
func ToChar(repr []key.Symbol) (rune, error) {
	filtered := make([]key.Symbol, 0, len(repr))
	for _, s := range repr {
		if s != key.SymbolSpace {
			filtered = append(filtered, s)
		}
	}
	r, ok := reprToChar[reprKey(filtered)]
	if !ok {
		return 0, ErrNotRepresentable
	}
	return r, nil
}
