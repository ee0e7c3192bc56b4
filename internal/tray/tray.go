//go:build systray

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tray

import (
	"context"
	"fmt"
	"sync"

	"github.com/getlantern/systray"
	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/internal/logger"
)

// systrayManager drives a real OS status icon via getlantern/systray.
type systrayManager struct {
	iconIdle   []byte
	iconKeying []byte
	isKeying   bool
	cfg        models.Config
	logger     logger.Logger

	onCycleSpeed    func() error
	onToggleCurtisB func() error
	onShowConfig    func() error
	onResetDefaults func() error
	onExit          func()

	speedItem   *systray.MenuItem
	curtisBItem *systray.MenuItem
	configItem  *systray.MenuItem
	resetItem   *systray.MenuItem
	exitItem    *systray.MenuItem

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSystrayManager builds a Manager backed by a real tray icon.
func NewSystrayManager(log logger.Logger) Manager {
	return &systrayManager{
		iconIdle:   GetIconIdle(log),
		iconKeying: GetIconKeying(log),
		logger:     log,
	}
}

func (tm *systrayManager) SetCoreActions(onCycleSpeed, onToggleCurtisB, onShowConfig, onResetDefaults func() error, onExit func()) {
	tm.onCycleSpeed = onCycleSpeed
	tm.onToggleCurtisB = onToggleCurtisB
	tm.onShowConfig = onShowConfig
	tm.onResetDefaults = onResetDefaults
	tm.onExit = onExit
}

func (tm *systrayManager) Start() {
	if tm.cancel != nil {
		tm.cancel()
	}
	tm.ctx, tm.cancel = context.WithCancel(context.Background())
	tm.wg.Add(1)
	go func() {
		defer tm.wg.Done()
		systray.Run(tm.onReady, func() {
			if tm.onExit != nil {
				tm.onExit()
			}
		})
	}()
}

func (tm *systrayManager) onReady() {
	systray.SetIcon(tm.iconIdle)
	systray.SetTitle("gocw")
	systray.SetTooltip("Morse keyer")

	tm.speedItem = systray.AddMenuItem(fmt.Sprintf("Speed: %d WPM", tm.cfg.Keyer.SpeedWPM), "Cycle send speed")
	tm.curtisBItem = systray.AddMenuItem(curtisBTitle(tm.cfg.Keyer.CurtisB), "Toggle Curtis mode B")
	systray.AddSeparator()
	tm.configItem = systray.AddMenuItem("Show Config File", "Open configuration file")
	tm.resetItem = systray.AddMenuItem("Reset to Defaults", "Reset all settings to default values")
	systray.AddSeparator()
	tm.exitItem = systray.AddMenuItem("Quit", "Quit gocw")

	tm.wg.Add(1)
	go func() {
		defer tm.wg.Done()
		tm.handleMenuClicks()
	}()
}

func curtisBTitle(enabled bool) string {
	if enabled {
		return "Curtis Mode B: on"
	}
	return "Curtis Mode B: off"
}

func (tm *systrayManager) handleMenuClicks() {
	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-tm.speedItem.ClickedCh:
			if tm.onCycleSpeed != nil {
				if err := tm.onCycleSpeed(); err != nil {
					tm.logger.Error("Error cycling speed: %v", err)
				}
			}
		case <-tm.curtisBItem.ClickedCh:
			if tm.onToggleCurtisB != nil {
				if err := tm.onToggleCurtisB(); err != nil {
					tm.logger.Error("Error toggling Curtis mode B: %v", err)
				}
			}
		case <-tm.configItem.ClickedCh:
			if tm.onShowConfig != nil {
				if err := tm.onShowConfig(); err != nil {
					tm.logger.Error("Error showing config: %v", err)
				}
			}
		case <-tm.resetItem.ClickedCh:
			if tm.onResetDefaults != nil {
				if err := tm.onResetDefaults(); err != nil {
					tm.logger.Error("Error resetting to defaults: %v", err)
				}
			}
		case <-tm.exitItem.ClickedCh:
			if tm.cancel != nil {
				tm.cancel()
			}
			systray.Quit()
			if tm.onExit != nil {
				tm.onExit()
			}
			return
		}
	}
}

func (tm *systrayManager) SetKeying(closed bool) {
	tm.isKeying = closed
	if closed {
		systray.SetIcon(tm.iconKeying)
	} else {
		systray.SetIcon(tm.iconIdle)
	}
}

func (tm *systrayManager) UpdateSettings(cfg models.Config) {
	tm.cfg = cfg
	if tm.speedItem != nil {
		tm.speedItem.SetTitle(fmt.Sprintf("Speed: %d WPM", cfg.Keyer.SpeedWPM))
	}
	if tm.curtisBItem != nil {
		tm.curtisBItem.SetTitle(curtisBTitle(cfg.Keyer.CurtisB))
	}
}

func (tm *systrayManager) Stop() {
	if tm.cancel != nil {
		tm.cancel()
	}
	systray.Quit()
	tm.wg.Wait()
}
