// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package providers

import "testing"

func TestDummyProviderIsAlwaysSupported(t *testing.T) {
	p := NewDummyProvider()
	if !p.IsSupported() {
		t.Fatalf("DummyProvider.IsSupported() = false, want true")
	}
}

func TestDummyProviderStartTwiceFails(t *testing.T) {
	p := NewDummyProvider()
	if err := p.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := p.Start(); err == nil {
		t.Fatalf("second Start succeeded, want an error")
	}
}

func TestDummyProviderNeverInvokesCallback(t *testing.T) {
	p := NewDummyProvider()
	called := false
	if err := p.RegisterKey("KEY_SPACE", func(bool) { called = true }); err != nil {
		t.Fatalf("RegisterKey: %v", err)
	}
	_ = p.Start()
	p.Stop()
	if called {
		t.Fatalf("dummy provider invoked a callback")
	}
}
