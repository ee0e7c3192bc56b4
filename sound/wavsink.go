// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package sound

import (
	"io"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavSink appends every keyed tone and silence, in order, to a single
// mono 16-bit PCM WAV file. Close flushes the encoder and must be called
// exactly once.
type WavSink struct {
	mu        sync.Mutex
	enc       *wav.Encoder
	amplitude float64
}

// NewWavSink wraps w (typically an *os.File) in a wav.Encoder at the
// package sample rate, mono, 16-bit PCM, and sets the sine amplitude used
// for tones (0..1, where 1 is full scale).
func NewWavSink(w io.WriteSeeker, amplitude float64) *WavSink {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	return &WavSink{enc: enc, amplitude: amplitude}
}

// Tone appends durationUs microseconds of a sine wave at freqHz.
func (s *WavSink) Tone(freqHz, durationUs uint32) error {
	return s.write(freqHz, durationUs)
}

// Silence appends durationUs microseconds of digital silence.
func (s *WavSink) Silence(durationUs uint32) error {
	return s.write(0, durationUs)
}

func (s *WavSink) write(freqHz, durationUs uint32) error {
	samples := pcmSamples(freqHz, durationUs, s.amplitude)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Write(buf)
}

// Close flushes and finalizes the WAV file's RIFF headers.
func (s *WavSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Close()
}
