// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tray

import (
	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/internal/logger"
)

// mockManager logs tray actions instead of showing a real status icon.
// It is the default build (no "systray" build tag, e.g. headless CI).
type mockManager struct {
	logger logger.Logger
	cfg    models.Config

	onCycleSpeed    func() error
	onToggleCurtisB func() error
	onShowConfig    func() error
	onResetDefaults func() error
	onExit          func()
}

// NewMockManager builds a Manager that only logs.
func NewMockManager(log logger.Logger) Manager {
	return &mockManager{logger: log}
}

func (tm *mockManager) Start() {
	tm.logger.Info("Mock tray started (no actual status icon is shown)")
}

func (tm *mockManager) Stop() {
	tm.logger.Info("Mock tray stopped")
}

func (tm *mockManager) SetKeying(closed bool) {
	if closed {
		tm.logger.Debug("Mock tray: keying closed")
	} else {
		tm.logger.Debug("Mock tray: keying open")
	}
}

func (tm *mockManager) UpdateSettings(cfg models.Config) {
	tm.cfg = cfg
	tm.logger.Info("Mock tray: settings updated (speed=%d curtis_b=%v)", cfg.Keyer.SpeedWPM, cfg.Keyer.CurtisB)
}

func (tm *mockManager) SetCoreActions(onCycleSpeed, onToggleCurtisB, onShowConfig, onResetDefaults func() error, onExit func()) {
	tm.onCycleSpeed = onCycleSpeed
	tm.onToggleCurtisB = onToggleCurtisB
	tm.onShowConfig = onShowConfig
	tm.onResetDefaults = onResetDefaults
	tm.onExit = onExit
	tm.logger.Info("Mock tray: core actions set")
}
