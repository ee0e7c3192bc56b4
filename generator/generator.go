// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package generator implements the background tone-dequeue thread bound
// to a tone queue, a sound sink, and (optionally) a Key.
package generator

import (
	"context"
	"sync"
	"time"

	"github.com/hamkit/gocw/key"
	"github.com/hamkit/gocw/morsetable"
	"github.com/hamkit/gocw/tonequeue"
)

// Sink is the PCM/audio-rendering collaborator a Generator drives. Real
// sound-card backends are out of scope (spec §1); package sound supplies
// a WAV-file and a null reference implementation.
type Sink interface {
	Tone(freqHz, durationUs uint32) error
	Silence(durationUs uint32) error
	Close() error
}

// ParamsSource supplies the derived tone durations and frequency a
// Generator needs on each sync_parameters call (§4.4). params.Params
// implements this interface structurally.
type ParamsSource interface {
	Durations() (dotUs, dashUs, eoeUs, freqHz uint32)
}

// holdSlice bounds how long a single synthesis call for a "forever" tone
// runs before the dequeue loop re-checks the queue for a replacement.
const holdSlice = 50 * time.Millisecond

// Generator owns the background dequeue goroutine described in spec §5.
type Generator struct {
	mu     sync.Mutex
	key    *key.Key
	params ParamsSource
	sink   Sink

	freqHz      uint32
	dotLengthUs uint32
	dashLengthUs uint32
	eoeDelayUs  uint32

	tq *tonequeue.ToneQueue
}

// New returns a Generator bound to tq and sink. BindKey/BindParams attach
// the remaining optional collaborators.
func New(tq *tonequeue.ToneQueue, sink Sink) *Generator {
	return &Generator{
		tq:          tq,
		sink:        sink,
		freqHz:      600,
		dotLengthUs: 60_000,
	}
}

// BindKey attaches the Key this Generator notifies at each tone boundary.
// A Generator may run unbound (k == nil is accepted, and is the only way
// to clear a binding).
func (g *Generator) BindKey(k *key.Key) {
	g.mu.Lock()
	g.key = k
	g.mu.Unlock()
}

// BindParams attaches the parameter source consulted by SyncParameters.
func (g *Generator) BindParams(p ParamsSource) {
	g.mu.Lock()
	g.params = p
	g.mu.Unlock()
}

func (g *Generator) boundKey() *key.Key {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.key
}

// SyncParameters recomputes the derived durations from the bound
// ParamsSource. It is a no-op if none is bound.
func (g *Generator) SyncParameters() error {
	g.mu.Lock()
	p := g.params
	g.mu.Unlock()
	if p == nil {
		return nil
	}
	dot, dash, eoe, freq := p.Durations()
	g.mu.Lock()
	g.dotLengthUs, g.dashLengthUs, g.eoeDelayUs, g.freqHz = dot, dash, eoe, freq
	g.mu.Unlock()
	return nil
}

// Durations returns the current derived timing, for diagnostics/tests.
func (g *Generator) Durations() (dotUs, dashUs, eoeUs, freqHz uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dotLengthUs, g.dashLengthUs, g.eoeDelayUs, g.freqHz
}

///////////////////////////////////////////////////////////////////////////
// Enqueue operations (the Generator contract consumed by key.Key)

// EnqueueBeginMark enqueues a forever tone at the current frequency.
func (g *Generator) EnqueueBeginMark() error {
	freq, _, _, _ := g.snapshotDurations()
	return g.tq.Enqueue(tonequeue.Tone{FrequencyHz: freq, IsForever: true})
}

// EnqueueBeginSpace enqueues a forever silent tone.
func (g *Generator) EnqueueBeginSpace() error {
	return g.tq.Enqueue(tonequeue.Tone{IsForever: true})
}

// EnqueuePartialSymbol enqueues one Dot, Dash, or inter-element Space, at
// the currently derived durations, without any trailing end-of-mark gap.
func (g *Generator) EnqueuePartialSymbol(s key.Symbol) error {
	freq, dotUs, dashUs, eoeUs := g.snapshotDurations()
	switch s {
	case key.SymbolDot:
		return g.tq.Enqueue(tonequeue.Tone{FrequencyHz: freq, DurationUs: dotUs})
	case key.SymbolDash:
		return g.tq.Enqueue(tonequeue.Tone{FrequencyHz: freq, DurationUs: dashUs})
	default:
		return g.tq.Enqueue(tonequeue.Tone{DurationUs: eoeUs})
	}
}

// Silence interrupts any currently-sounding forever tone by enqueuing a
// fresh forever silence; the dequeue loop notices the new entry and
// switches to it (see run's hold-loop).
func (g *Generator) Silence() error {
	return g.tq.Enqueue(tonequeue.Tone{IsForever: true})
}

func (g *Generator) snapshotDurations() (freq, dotUs, dashUs, eoeUs uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.freqHz, g.dotLengthUs, g.dashLengthUs, g.eoeDelayUs
}

///////////////////////////////////////////////////////////////////////////
// Character-driven (TK) path (spec §4.6/I4)

// EnqueueCharacter looks up r's Morse representation and enqueues the
// Dot/Dash + end-of-element-space sequence the tone-queue key path (TK)
// needs to reproduce it as callback/receiver observables. It returns
// morsetable's not-found error for unrepresentable runes.
func (g *Generator) EnqueueCharacter(r rune) error {
	repr, ok := morsetable.Lookup(r)
	if !ok {
		return morsetable.ErrNotRepresentable
	}
	for _, sym := range repr {
		if err := g.EnqueuePartialSymbol(sym); err != nil {
			return err
		}
		if err := g.EnqueuePartialSymbol(key.SymbolSpace); err != nil {
			return err
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Dequeue thread

// Run blocks, dequeuing tones and driving the Sink/Key until ctx is
// cancelled. Run is meant to be the body of exactly one goroutine.
func (g *Generator) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		tone, ok := g.tq.Dequeue()
		if !ok {
			g.waitForToneOrDone(ctx)
			continue
		}
		g.process(ctx, tone)
	}
}

func (g *Generator) waitForToneOrDone(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.tq.WaitForTone()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (g *Generator) process(ctx context.Context, tone tonequeue.Tone) {
	_ = g.SyncParameters()

	k := g.boundKey()
	value := key.Open
	if tone.FrequencyHz > 0 {
		value = key.Closed
	}
	if k != nil {
		_ = k.TKSetValue(value)
		k.IKIncrementTimer(tone.DurationUs)
		_ = k.IKUpdateGraphState()
	}

	if tone.IsForever {
		g.synthesizeForever(ctx, tone)
		return
	}
	g.synthesize(tone)
}

func (g *Generator) synthesize(tone tonequeue.Tone) {
	if g.sink == nil {
		return
	}
	if tone.FrequencyHz > 0 {
		_ = g.sink.Tone(tone.FrequencyHz, tone.DurationUs)
		return
	}
	_ = g.sink.Silence(tone.DurationUs)
}

// synthesizeForever holds the given tone in slices until the queue has
// something new to switch to, modelling the C source's "forever" tone
// without requiring in-place ring-buffer replacement.
func (g *Generator) synthesizeForever(ctx context.Context, tone tonequeue.Tone) {
	sliceUs := uint32(holdSlice / time.Microsecond)
	for {
		if ctx.Err() != nil {
			return
		}
		if g.tq.Len() > 0 {
			return
		}
		if g.sink != nil {
			if tone.FrequencyHz > 0 {
				_ = g.sink.Tone(tone.FrequencyHz, sliceUs)
			} else {
				_ = g.sink.Silence(sliceUs)
			}
		} else {
			time.Sleep(holdSlice)
		}
	}
}
