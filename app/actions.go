// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package app

import (
	"github.com/hamkit/gocw/config/loaders"
)

// speedPresets is the cycle order for the tray's "cycle speed" action.
var speedPresets = []int{13, 18, 20, 25, 30, 35, 40}

func nextSpeedPreset(current int) int {
	for _, wpm := range speedPresets {
		if wpm > current {
			return wpm
		}
	}
	return speedPresets[0]
}

// cycleSpeed advances to the next speed preset above the current WPM,
// wrapping back to the slowest preset. It is wired into the tray's
// "cycle speed" menu item.
func (a *App) cycleSpeed() error {
	next := nextSpeedPreset(a.params.WPM())
	if err := a.params.SetWPM(next); err != nil {
		return err
	}
	if err := a.gen.SyncParameters(); err != nil {
		return err
	}
	a.cfg.Keyer.SpeedWPM = next
	a.tray.UpdateSettings(a.cfg)
	return nil
}

// toggleCurtisB flips Curtis iambic keyer mode B.
func (a *App) toggleCurtisB() error {
	enabled := !a.params.CurtisB()
	a.params.SetCurtisB(enabled)
	if enabled {
		a.key.IKEnableCurtisB()
	} else {
		a.key.IKDisableCurtisB()
	}
	if err := a.gen.SyncParameters(); err != nil {
		return err
	}
	a.cfg.Keyer.CurtisB = enabled
	a.tray.UpdateSettings(a.cfg)
	return nil
}

// showConfig re-reads the config file from disk, applies any corrections
// found, and saves them back (surfacing the on-disk path the user can
// open in their own editor — gocw has no GUI to display it inline).
func (a *App) showConfig() error {
	if a.configPath == "" {
		return nil
	}
	cfg, err := loaders.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.logger.Info("Configuration file: %s", a.configPath)
	return loaders.SaveConfig(a.configPath, cfg)
}

// resetToDefaults restores the built-in keyer defaults and re-syncs the
// generator, without touching the on-disk config file.
func (a *App) resetToDefaults() error {
	fresh := a.cfg
	loaders.SetDefaultConfig(&fresh)
	a.cfg.Keyer = fresh.Keyer

	if err := a.applyKeyerConfig(); err != nil {
		return err
	}
	if err := a.gen.SyncParameters(); err != nil {
		return err
	}
	a.key.SKReset()
	a.key.IKReset()
	if a.cfg.Keyer.CurtisB {
		a.key.IKEnableCurtisB()
	}
	a.tray.UpdateSettings(a.cfg)
	return nil
}
