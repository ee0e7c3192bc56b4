//go:build !systray

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tray

import "github.com/hamkit/gocw/internal/logger"

// CreateDefaultManager returns the mock manager when gocw is built without
// the "systray" build tag (the default: systray needs cgo and an X11/Wayland
// session, neither available in a headless build).
func CreateDefaultManager(log logger.Logger) Manager {
	return NewMockManager(log)
}
