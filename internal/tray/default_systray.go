//go:build systray

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tray

import "github.com/hamkit/gocw/internal/logger"

// CreateDefaultManager returns the real systray-backed manager when gocw
// is built with the "systray" build tag.
func CreateDefaultManager(log logger.Logger) Manager {
	return NewSystrayManager(log)
}
