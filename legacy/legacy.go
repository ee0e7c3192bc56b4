// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package legacy offers the historical flat function-call API (spec §9)
// over a single process-wide Key, for callers ported from the original
// global-state C library instead of constructing their own key.Key.
package legacy

import (
	"context"
	"sync"

	"github.com/hamkit/gocw/generator"
	"github.com/hamkit/gocw/key"
	"github.com/hamkit/gocw/params"
	"github.com/hamkit/gocw/sound"
	"github.com/hamkit/gocw/tonequeue"
)

var (
	once     sync.Once
	theKey   *key.Key
	theGen   *generator.Generator
	theParam *params.Params
)

func ensure() {
	once.Do(func() {
		theParam = params.New()
		tq := tonequeue.New(tonequeue.DefaultCapacity, tonequeue.DefaultLowWaterMark)
		theGen = generator.New(tq, sound.NewNullSink())
		theGen.BindParams(theParam)
		theKey = key.NewKey()
		theKey.RegisterGenerator(theGen)
		theGen.BindKey(theKey)
		_ = theGen.SyncParameters()
		go theGen.Run(context.Background())
	})
}

// SendDash enqueues one dash tone on the process-wide generator. It does
// not wait for the tone to sound: the iambic keyer stays Idle on this
// path, so IKWaitForElement returns at once. Morse timing is driven
// entirely by the Parameter Synchroniser.
func SendDash() error {
	ensure()
	return enqueueAndWait(key.SymbolDash)
}

// SendDot is SendDash's dot counterpart.
func SendDot() error {
	ensure()
	return enqueueAndWait(key.SymbolDot)
}

// SendCharacter keys the character's full Morse representation through
// the process-wide generator.
func SendCharacter(r rune) error {
	ensure()
	if err := theGen.EnqueueCharacter(r); err != nil {
		return err
	}
	return theKey.IKWaitForKeyer()
}

func enqueueAndWait(sym key.Symbol) error {
	if err := theGen.EnqueuePartialSymbol(sym); err != nil {
		return err
	}
	return theKey.IKWaitForElement()
}

// SetSpeed sets the process-wide send speed in words per minute.
func SetSpeed(wpm int) error {
	ensure()
	if err := theParam.SetWPM(wpm); err != nil {
		return err
	}
	return theGen.SyncParameters()
}

// SetFrequency sets the process-wide sidetone frequency in Hz.
func SetFrequency(hz int) error {
	ensure()
	if err := theParam.SetFrequency(hz); err != nil {
		return err
	}
	return theGen.SyncParameters()
}

// RegisterKeyingCallback registers a callback against the process-wide
// Key, matching the historical cw_register_keying_callback signature.
func RegisterKeyingCallback(fn key.LegacyKeyingCallback, arg interface{}) {
	ensure()
	theKey.RegisterLegacyKeyingCallback(fn, arg)
}

// Reset silences and idles the process-wide straight key and iambic
// keyer, matching cw_keyer_reset/cw_straight_key_reset combined.
func Reset() {
	ensure()
	theKey.SKReset()
	theKey.IKReset()
}
