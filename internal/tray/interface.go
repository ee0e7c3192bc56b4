// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package tray shows the keyer's armed/busy state as a system tray icon
// and exposes a small menu for the Parameter Synchroniser values most
// often changed at runtime.
package tray

import "github.com/hamkit/gocw/config/models"

// Manager is the tray surface the assembler drives.
type Manager interface {
	// Start shows the tray icon. It does not block.
	Start()
	// Stop removes the tray icon and releases its goroutines.
	Stop()
	// SetKeying updates the icon to reflect whether the key is currently
	// closed (sending) or open (idle).
	SetKeying(closed bool)
	// UpdateSettings refreshes the Speed/Curtis-B display from cfg.
	UpdateSettings(cfg models.Config)
	// SetCoreActions wires the menu's callbacks. onCycleSpeed advances to
	// the next speed preset; onToggleCurtisB flips Curtis mode B;
	// onShowConfig handles the Show Config File item; onResetToDefaults restores
	// defaults; onExit is invoked when Quit is clicked.
	SetCoreActions(onCycleSpeed func() error, onToggleCurtisB func() error, onShowConfig func() error, onResetToDefaults func() error, onExit func())
}
