// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"testing"

	"github.com/hamkit/gocw/cwerr"
)

func TestDefaults(t *testing.T) {
	p := New()
	if p.WPM() != DefaultWPM {
		t.Fatalf("WPM() = %d, want %d", p.WPM(), DefaultWPM)
	}
	if p.Frequency() != DefaultFrequencyHz {
		t.Fatalf("Frequency() = %d, want %d", p.Frequency(), DefaultFrequencyHz)
	}
	if p.CurtisB() {
		t.Fatalf("CurtisB() = true, want false by default")
	}
}

func TestSetWPMRejectsOutOfRangeAndKeepsPriorValue(t *testing.T) {
	p := New()
	err := p.SetWPM(MaxWPM + 1)
	if !errors.Is(err, cwerr.ErrInvalidArgument) {
		t.Fatalf("SetWPM(%d) err = %v, want ErrInvalidArgument", MaxWPM+1, err)
	}
	if p.WPM() != DefaultWPM {
		t.Fatalf("WPM() after rejected set = %d, want unchanged %d", p.WPM(), DefaultWPM)
	}

	err = p.SetWPM(MinWPM - 1)
	if !errors.Is(err, cwerr.ErrInvalidArgument) {
		t.Fatalf("SetWPM(%d) err = %v, want ErrInvalidArgument", MinWPM-1, err)
	}
}

func TestSetWPMBoundaryValuesAccepted(t *testing.T) {
	p := New()
	if err := p.SetWPM(MinWPM); err != nil {
		t.Fatalf("SetWPM(MinWPM): %v", err)
	}
	if p.WPM() != MinWPM {
		t.Fatalf("WPM() = %d, want %d", p.WPM(), MinWPM)
	}
	if err := p.SetWPM(MaxWPM); err != nil {
		t.Fatalf("SetWPM(MaxWPM): %v", err)
	}
	if p.WPM() != MaxWPM {
		t.Fatalf("WPM() = %d, want %d", p.WPM(), MaxWPM)
	}
}

func TestSetFrequencyRange(t *testing.T) {
	p := New()
	if err := p.SetFrequency(MaxFrequencyHz + 1); !errors.Is(err, cwerr.ErrInvalidArgument) {
		t.Fatalf("SetFrequency over max err = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetFrequency(0); err != nil {
		t.Fatalf("SetFrequency(0) (silent keying) should be accepted: %v", err)
	}
}

func TestSetWeightingRange(t *testing.T) {
	p := New()
	if err := p.SetWeighting(MaxWeightFrac + 1); !errors.Is(err, cwerr.ErrInvalidArgument) {
		t.Fatalf("SetWeighting over max err = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetWeighting(MinWeightFrac - 1); !errors.Is(err, cwerr.ErrInvalidArgument) {
		t.Fatalf("SetWeighting under min err = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetWeighting(-50); err != nil {
		t.Fatalf("SetWeighting(-50): %v", err)
	}
}

func TestDurationsDashIsThreeTimesDotAtZeroWeighting(t *testing.T) {
	p := New()
	_ = p.SetWPM(20)
	_ = p.SetWeighting(0)
	dot, dash, eoe, _ := p.Durations()
	if dash != 3*dot {
		t.Fatalf("dash = %d, want 3x dot = %d", dash, 3*dot)
	}
	if eoe != dot {
		t.Fatalf("eoe = %d, want equal to dot at zero weighting", eoe)
	}
}

func TestDurationsPositiveWeightingLengthensMarks(t *testing.T) {
	p := New()
	_ = p.SetWPM(20)
	_ = p.SetWeighting(0)
	dot0, _, eoe0, _ := p.Durations()

	_ = p.SetWeighting(25)
	dot1, _, eoe1, _ := p.Durations()

	if dot1 <= dot0 {
		t.Fatalf("positive weighting did not lengthen the dot: %d -> %d", dot0, dot1)
	}
	if eoe1 >= eoe0 {
		t.Fatalf("positive weighting did not shorten the inter-element space: %d -> %d", eoe0, eoe1)
	}
}

func TestDurationsFasterSpeedShortensDot(t *testing.T) {
	p := New()
	_ = p.SetWPM(10)
	slow, _, _, _ := p.Durations()
	_ = p.SetWPM(40)
	fast, _, _, _ := p.Durations()
	if fast >= slow {
		t.Fatalf("dot at 40 WPM (%d) not shorter than at 10 WPM (%d)", fast, slow)
	}
}
