// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package dbus

import (
	"testing"

	"github.com/hamkit/gocw/generator"
	"github.com/hamkit/gocw/internal/logger"
	"github.com/hamkit/gocw/key"
	"github.com/hamkit/gocw/params"
	"github.com/hamkit/gocw/sound"
	"github.com/hamkit/gocw/tonequeue"
)

func newTestService() *Service {
	p := params.New()
	tq := tonequeue.New(tonequeue.DefaultCapacity, tonequeue.DefaultLowWaterMark)
	gen := generator.New(tq, sound.NewNullSink())
	gen.BindParams(p)
	k := key.NewKey()
	k.RegisterGenerator(gen)
	gen.BindKey(k)
	return New("org.gocw.Keyer", "/org/gocw/Keyer", p, gen, k, logger.NewDefaultLogger(logger.WarningLevel))
}

func TestSetSpeedUpdatesParamsAndSyncsGenerator(t *testing.T) {
	s := newTestService()
	if err := s.SetSpeed(25); err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	if s.params.WPM() != 25 {
		t.Fatalf("WPM = %d, want 25", s.params.WPM())
	}
}

func TestSetSpeedRejectsOutOfRange(t *testing.T) {
	s := newTestService()
	if err := s.SetSpeed(1000); err == nil {
		t.Fatalf("expected an error for an out-of-range speed")
	}
}

func TestGetParametersReflectsCurrentState(t *testing.T) {
	s := newTestService()
	if err := s.SetCurtisB(true); err != nil {
		t.Fatalf("SetCurtisB: %v", err)
	}
	wpm, _, _, _, _, _, curtisB, err := s.GetParameters()
	if err != nil {
		t.Fatalf("GetParameters: %v", err)
	}
	if wpm != s.params.WPM() {
		t.Fatalf("GetParameters wpm = %d, want %d", wpm, s.params.WPM())
	}
	if !curtisB {
		t.Fatalf("GetParameters curtisB = false, want true")
	}
}

func TestResetIdlesKey(t *testing.T) {
	s := newTestService()
	if err := s.k.SKNotifyEvent(key.Closed); err != nil {
		t.Fatalf("SKNotifyEvent: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.k.SKGetValue() != key.Open {
		t.Fatalf("SKGetValue = %v, want Open after Reset", s.k.SKGetValue())
	}
}
