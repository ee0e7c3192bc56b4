// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package manager

import (
	"testing"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/key"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := models.Config{}
	cfg.Input.Provider = "joystick"
	if _, err := New(cfg, key.NewKey()); err == nil {
		t.Fatalf("expected an error for an unknown input provider")
	}
}

func TestNewWithDummyProviderStartsAndStops(t *testing.T) {
	cfg := models.Config{}
	cfg.Input.Provider = models.ProviderDummy
	cfg.Input.DotPaddleKey = "KEY_LEFTCTRL"
	cfg.Input.DashPaddleKey = "KEY_RIGHTCTRL"
	cfg.Input.StraightKeyKey = "KEY_SPACE"

	m, err := New(cfg, key.NewKey())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Stop()
}

func TestPaddleEdgesCombineIntoSqueezeState(t *testing.T) {
	cfg := models.Config{}
	cfg.Input.Provider = models.ProviderDummy
	k := key.NewKey()
	m, err := New(cfg, k)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.onDotEdge(true)
	dot, dash := k.IKGetPaddles()
	if !dot || dash {
		t.Fatalf("paddles after dot edge = (%v,%v), want (true,false)", dot, dash)
	}

	m.onDashEdge(true)
	dot, dash = k.IKGetPaddles()
	if !dot || !dash {
		t.Fatalf("paddles after dash edge = (%v,%v), want (true,true)", dot, dash)
	}
}
