// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package sound supplies generator.Sink implementations: a null sink for
// tests and headless daemons, and a WAV-file sink for rendering keyed
// audio to disk. Neither talks to a live sound card (spec §1 Non-goals).
package sound

import (
	"math"
	"sync"
)

// NullSink discards every tone but counts calls, for assertions in tests
// that only care about timing/ordering, not the waveform.
type NullSink struct {
	mu        sync.Mutex
	tones     int
	silences  int
	closed    bool
	lastFreq  uint32
	lastUs    uint32
}

// NewNullSink returns a ready-to-use NullSink.
func NewNullSink() *NullSink { return &NullSink{} }

// Tone records a tone call.
func (s *NullSink) Tone(freqHz, durationUs uint32) error {
	s.mu.Lock()
	s.tones++
	s.lastFreq, s.lastUs = freqHz, durationUs
	s.mu.Unlock()
	return nil
}

// Silence records a silence call.
func (s *NullSink) Silence(durationUs uint32) error {
	s.mu.Lock()
	s.silences++
	s.lastFreq, s.lastUs = 0, durationUs
	s.mu.Unlock()
	return nil
}

// Close marks the sink closed.
func (s *NullSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Counts returns the number of Tone and Silence calls observed so far.
func (s *NullSink) Counts() (tones, silences int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tones, s.silences
}

// Last returns the frequency and duration of the most recent Tone or
// Silence call (frequency 0 for a Silence).
func (s *NullSink) Last() (freqHz, durationUs uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFreq, s.lastUs
}

const sampleRate = 8000

// pcmSamples renders durationUs microseconds of a sine wave at freqHz
// and the given peak amplitude (0..1) into 16-bit PCM samples. freqHz==0
// yields silence.
func pcmSamples(freqHz uint32, durationUs uint32, amplitude float64) []int {
	n := int(uint64(durationUs) * sampleRate / 1_000_000)
	samples := make([]int, n)
	if freqHz == 0 || amplitude <= 0 {
		return samples
	}
	peak := amplitude * 32767
	for i := range samples {
		phase := 2 * math.Pi * float64(freqHz) * float64(i) / sampleRate
		samples[i] = int(peak * math.Sin(phase))
	}
	return samples
}
