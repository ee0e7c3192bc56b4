// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package providers supplies physical key-edge sources for the keyer:
// evdev for real hardware, and a dummy no-op fallback.
package providers

// EdgeCallback is fired on every press (pressed=true) or release
// (pressed=false) of a registered key.
type EdgeCallback func(pressed bool)

// Provider is a source of key press/release edges, identified by the
// kernel key name (e.g. "KEY_LEFTCTRL", "KEY_SPACE").
type Provider interface {
	IsSupported() bool
	Start() error
	Stop()
	RegisterKey(keyName string, callback EdgeCallback) error
}
