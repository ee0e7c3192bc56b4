// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package receiver implements the minimal timing Receiver (§4.5): it
// records mark/space edges against the Parameter Synchroniser's derived
// durations and classifies completed marks as dot or dash, forwarding
// decoded symbols to a caller-supplied sink. Decoding symbols into
// characters is out of scope (spec §1 Non-goals).
package receiver

import (
	"sync"

	"github.com/hamkit/gocw/key"
)

// SymbolSink receives each classified mark as it completes.
type SymbolSink func(sym key.Symbol)

// ParamsSource supplies the dot/dash/eoe durations and tolerance percentage
// used to classify a completed mark. params.Params satisfies this
// structurally; here we keep the dependency minimal.
type ParamsSource interface {
	Durations() (dotUs, dashUs, eoeUs, freqHz uint32)
	Tolerance() int
}

// TimingReceiver implements key.Receiver by timing the interval between
// MarkBegin and MarkEnd and classifying it as a dot or dash against the
// currently configured speed, within the configured tolerance band.
type TimingReceiver struct {
	mu     sync.Mutex
	params ParamsSource
	sink   SymbolSink

	markStart key.Timestamp
	haveStart bool

	dotUs, dashUs uint32
	toleranceFrac int
}

// New returns a TimingReceiver that classifies against params and reports
// completed marks to sink (sink may be nil to discard them).
func New(params ParamsSource, sink SymbolSink) *TimingReceiver {
	return &TimingReceiver{params: params, sink: sink}
}

// MarkBegin records the timestamp of a mark's leading edge.
func (r *TimingReceiver) MarkBegin(t key.Timestamp) error {
	r.mu.Lock()
	r.markStart = t
	r.haveStart = true
	r.mu.Unlock()
	return nil
}

// MarkEnd closes out the in-flight mark, classifying its duration as a
// dot or dash (whichever nominal length it falls within tolerance of; a
// mark within tolerance of both, or of neither, is classified by nearest
// distance) and reporting it to the sink.
func (r *TimingReceiver) MarkEnd(t key.Timestamp) error {
	r.mu.Lock()
	if !r.haveStart {
		r.mu.Unlock()
		return nil
	}
	start := r.markStart
	r.haveStart = false
	dotUs, dashUs := r.dotUs, r.dashUs
	sink := r.sink
	r.mu.Unlock()

	elapsedUs := elapsedMicros(start, t)
	sym := classify(elapsedUs, dotUs, dashUs)
	if sink != nil {
		sink(sym)
	}
	return nil
}

// SyncParameters refreshes the dot/dash durations and tolerance used for
// classification from the bound ParamsSource.
func (r *TimingReceiver) SyncParameters() error {
	if r.params == nil {
		return nil
	}
	dot, dash, _, _ := r.params.Durations()
	tol := r.params.Tolerance()
	r.mu.Lock()
	r.dotUs, r.dashUs, r.toleranceFrac = dot, dash, tol
	r.mu.Unlock()
	return nil
}

func elapsedMicros(start, end key.Timestamp) uint32 {
	us := (end.Sec-start.Sec)*1_000_000 + (end.Usec - start.Usec)
	if us < 0 {
		return 0
	}
	return uint32(us)
}

func classify(elapsedUs, dotUs, dashUs uint32) key.Symbol {
	dotDist := absDiff(elapsedUs, dotUs)
	dashDist := absDiff(elapsedUs, dashUs)
	if dotDist <= dashDist {
		return key.SymbolDot
	}
	return key.SymbolDash
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
