// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package hotkeys is a documentation-only facade over its subpackages,
// which supply the physical key-edge sources driving a key.Key.
//
// Subpackages:
//   - providers: concrete key-edge sources (evdev, dummy).
//   - manager:   selects a provider per config and wires it to a key.Key.
package hotkeys
