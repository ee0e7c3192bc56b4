// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package manager selects a key-edge Provider per config and wires its
// registered keys to a key.Key's straight-key and paddle event entry
// points.
package manager

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/hotkeys/providers"
	"github.com/hamkit/gocw/key"
)

// Manager owns the selected Provider and the paddle-state bookkeeping
// needed to report combined dot+dash edges to key.Key.
type Manager struct {
	provider providers.Provider

	mu          sync.Mutex
	dotPressed  bool
	dashPressed bool

	k *key.Key
}

// New selects a Provider for cfg.Input (auto-detecting evdev support
// when cfg.Input.Provider is "auto") and wires it to k.
func New(cfg models.Config, k *key.Key) (*Manager, error) {
	m := &Manager{k: k}

	provider, err := selectProvider(cfg)
	if err != nil {
		return nil, err
	}
	m.provider = provider

	if cfg.Input.DotPaddleKey != "" {
		if err := provider.RegisterKey(cfg.Input.DotPaddleKey, m.onDotEdge); err != nil {
			return nil, fmt.Errorf("registering dot paddle key: %w", err)
		}
	}
	if cfg.Input.DashPaddleKey != "" {
		if err := provider.RegisterKey(cfg.Input.DashPaddleKey, m.onDashEdge); err != nil {
			return nil, fmt.Errorf("registering dash paddle key: %w", err)
		}
	}
	if cfg.Input.StraightKeyKey != "" {
		if err := provider.RegisterKey(cfg.Input.StraightKeyKey, m.onStraightKeyEdge); err != nil {
			return nil, fmt.Errorf("registering straight key: %w", err)
		}
	}

	return m, nil
}

func selectProvider(cfg models.Config) (providers.Provider, error) {
	switch cfg.Input.Provider {
	case models.ProviderDummy:
		return providers.NewDummyProvider(), nil
	case models.ProviderEvdev:
		return providers.NewEvdevProvider(cfg.Input.Device), nil
	case models.ProviderAuto, "":
		if runtime.GOOS == "linux" {
			evp := providers.NewEvdevProvider(cfg.Input.Device)
			if evp.IsSupported() {
				return evp, nil
			}
		}
		return providers.NewDummyProvider(), nil
	default:
		return nil, fmt.Errorf("unknown input provider: %s", cfg.Input.Provider)
	}
}

// Start begins listening for key edges.
func (m *Manager) Start() error { return m.provider.Start() }

// Stop stops listening for key edges.
func (m *Manager) Stop() { m.provider.Stop() }

func (m *Manager) onDotEdge(pressed bool) {
	m.mu.Lock()
	m.dotPressed = pressed
	dash := m.dashPressed
	m.mu.Unlock()
	_ = m.k.IKNotifyPaddleEvent(pressed, dash)
}

func (m *Manager) onDashEdge(pressed bool) {
	m.mu.Lock()
	m.dashPressed = pressed
	dot := m.dotPressed
	m.mu.Unlock()
	_ = m.k.IKNotifyPaddleEvent(dot, pressed)
}

func (m *Manager) onStraightKeyEdge(pressed bool) {
	v := key.Open
	if pressed {
		v = key.Closed
	}
	_ = m.k.SKNotifyEvent(v)
}
