// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package providers

import (
	"fmt"
	"log"
)

// DummyProvider implements Provider with no actual functionality. It is
// the fallback when no evdev device is available; keying must then come
// from the legacy flat API (the WebSocket transport is read-only).
type DummyProvider struct {
	callbacks   map[string]EdgeCallback
	isListening bool
}

// NewDummyProvider returns a ready-to-use DummyProvider.
func NewDummyProvider() *DummyProvider {
	return &DummyProvider{callbacks: make(map[string]EdgeCallback)}
}

// IsSupported always returns true: the dummy provider is always available.
func (p *DummyProvider) IsSupported() bool { return true }

// Start logs guidance for enabling a real input source and marks the
// provider listening (though it never fires a callback).
func (p *DummyProvider) Start() error {
	if p.isListening {
		return fmt.Errorf("dummy provider already started")
	}
	p.isListening = true
	log.Println("Warning: using dummy key provider. Paddle/straight-key input will not be functional.")
	log.Println("To enable real input, grant access to /dev/input/eventN (usermod -aG input $USER)")
	log.Println("or drive the keyer through the legacy API instead.")
	return nil
}

// Stop marks the provider no longer listening.
func (p *DummyProvider) Stop() { p.isListening = false }

// RegisterKey records the callback but never invokes it.
func (p *DummyProvider) RegisterKey(keyName string, callback EdgeCallback) error {
	p.callbacks[keyName] = callback
	return nil
}
