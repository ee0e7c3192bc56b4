// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package params implements the Parameter Synchroniser (§4.4): the bank
// of keying parameters, their valid ranges, and the derivation of dot,
// dash and end-of-element durations from send speed and weighting.
package params

import (
	"fmt"
	"sync"

	"github.com/hamkit/gocw/cwerr"
)

// dotCalibrationUs is the Paris-standard dot length at 1 WPM, in
// microseconds (CW_DOT_CALIBRATION in the C source).
const dotCalibrationUs = 1_200_000

// Range bounds, inclusive, per spec §4.4/§7.
const (
	MinWPM, MaxWPM           = 4, 60
	MinFrequencyHz, MaxFrequencyHz = 0, 4000
	MinVolumePct, MaxVolumePct   = 0, 100
	MinGapDits, MaxGapDits     = 0, 60
	MinToleranceFrac, MaxToleranceFrac = 0, 100
	MinWeightFrac, MaxWeightFrac = -50, 50
)

// Defaults mirror the C source's reset_send_parameters/reset_receive_parameters.
const (
	DefaultWPM         = 18
	DefaultFrequencyHz = 600
	DefaultVolumePct   = 70
	DefaultGapDits     = 0
	DefaultTolerance   = 50
	DefaultWeight      = 0
)

// Params holds the keying parameter bank. All setters validate their
// argument against the named range and, on failure, leave the previous
// value untouched and return cwerr.ErrInvalidArgument (R1 — no
// correct-and-warn leniency for these; see DESIGN.md).
type Params struct {
	mu sync.Mutex

	wpm       int
	freqHz    int
	volumePct int
	gapDits   int
	tolerance int
	weight    int
	curtisB   bool
}

// New returns a Params bank at its documented defaults.
func New() *Params {
	return &Params{
		wpm:       DefaultWPM,
		freqHz:    DefaultFrequencyHz,
		volumePct: DefaultVolumePct,
		gapDits:   DefaultGapDits,
		tolerance: DefaultTolerance,
		weight:    DefaultWeight,
	}
}

func rangeErr(field string, v, lo, hi int) error {
	return fmt.Errorf("%s: %w (%d not in [%d,%d])", field, cwerr.ErrInvalidArgument, v, lo, hi)
}

// SetWPM sets the nominal Morse sending speed, in words per minute.
func (p *Params) SetWPM(wpm int) error {
	if wpm < MinWPM || wpm > MaxWPM {
		return rangeErr("send_speed_wpm", wpm, MinWPM, MaxWPM)
	}
	p.mu.Lock()
	p.wpm = wpm
	p.mu.Unlock()
	return nil
}

// WPM returns the current sending speed.
func (p *Params) WPM() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wpm
}

// SetFrequency sets the sidetone frequency in Hz. 0 means silent keying
// (no audible sidetone, mark/space events still fire).
func (p *Params) SetFrequency(hz int) error {
	if hz < MinFrequencyHz || hz > MaxFrequencyHz {
		return rangeErr("frequency_hz", hz, MinFrequencyHz, MaxFrequencyHz)
	}
	p.mu.Lock()
	p.freqHz = hz
	p.mu.Unlock()
	return nil
}

// Frequency returns the current sidetone frequency in Hz.
func (p *Params) Frequency() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freqHz
}

// SetVolume sets the sidetone volume as a percentage.
func (p *Params) SetVolume(pct int) error {
	if pct < MinVolumePct || pct > MaxVolumePct {
		return rangeErr("volume_pct", pct, MinVolumePct, MaxVolumePct)
	}
	p.mu.Lock()
	p.volumePct = pct
	p.mu.Unlock()
	return nil
}

// Volume returns the current sidetone volume percentage.
func (p *Params) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumePct
}

// SetGap sets the additional inter-character gap, in dot-lengths.
func (p *Params) SetGap(dits int) error {
	if dits < MinGapDits || dits > MaxGapDits {
		return rangeErr("gap_dits", dits, MinGapDits, MaxGapDits)
	}
	p.mu.Lock()
	p.gapDits = dits
	p.mu.Unlock()
	return nil
}

// Gap returns the current additional inter-character gap, in dot-lengths.
func (p *Params) Gap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gapDits
}

// SetTolerance sets the receive timing tolerance as a percentage of one
// dot length either side of nominal.
func (p *Params) SetTolerance(pct int) error {
	if pct < MinToleranceFrac || pct > MaxToleranceFrac {
		return rangeErr("tolerance_pct", pct, MinToleranceFrac, MaxToleranceFrac)
	}
	p.mu.Lock()
	p.tolerance = pct
	p.mu.Unlock()
	return nil
}

// Tolerance returns the current receive timing tolerance percentage.
func (p *Params) Tolerance() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tolerance
}

// SetWeighting sets the send weighting, as a signed percentage of one dot
// length added to marks and subtracted from spaces (a Farnsworth-style
// dash/dot asymmetry knob, distinct from the Farnsworth gap).
func (p *Params) SetWeighting(pct int) error {
	if pct < MinWeightFrac || pct > MaxWeightFrac {
		return rangeErr("weighting_pct", pct, MinWeightFrac, MaxWeightFrac)
	}
	p.mu.Lock()
	p.weight = pct
	p.mu.Unlock()
	return nil
}

// Weighting returns the current send weighting percentage.
func (p *Params) Weighting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weight
}

// SetCurtisB records whether Curtis mode B is the configured default for
// newly constructed keyers. It does not reach into any live key.Key;
// callers wire it through at construction (see app.New).
func (p *Params) SetCurtisB(enabled bool) {
	p.mu.Lock()
	p.curtisB = enabled
	p.mu.Unlock()
}

// CurtisB reports the configured Curtis-B default.
func (p *Params) CurtisB() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.curtisB
}

// Durations derives the dot, dash and end-of-element-space lengths (in
// microseconds) and the sidetone frequency from the current parameter
// bank, applying weighting as a shift between mark and space length at
// a constant mark-plus-following-space period (§4.4). It implements generator.ParamsSource.
func (p *Params) Durations() (dotUs, dashUs, eoeUs, freqHz uint32) {
	p.mu.Lock()
	wpm, weight, freq := p.wpm, p.weight, p.freqHz
	p.mu.Unlock()

	baseDotUs := dotCalibrationUs / wpm
	shiftUs := baseDotUs * weight / 100

	dot := baseDotUs + shiftUs
	if dot < 1 {
		dot = 1
	}
	dash := 3*baseDotUs + shiftUs
	eoe := baseDotUs - shiftUs
	if eoe < 1 {
		eoe = 1
	}
	return uint32(dot), uint32(dash), uint32(eoe), uint32(freq)
}
