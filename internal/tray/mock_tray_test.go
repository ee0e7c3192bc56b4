// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tray

import (
	"testing"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/internal/logger"
)

func TestMockManagerAcceptsCoreActionsWithoutPanicking(t *testing.T) {
	m := NewMockManager(logger.NewDefaultLogger(logger.WarningLevel))

	called := map[string]bool{}
	m.SetCoreActions(
		func() error { called["speed"] = true; return nil },
		func() error { called["curtisB"] = true; return nil },
		func() error { called["config"] = true; return nil },
		func() error { called["reset"] = true; return nil },
		func() { called["exit"] = true },
	)

	var cfg models.Config
	cfg.Keyer.SpeedWPM = 20
	cfg.Keyer.CurtisB = true

	m.Start()
	m.SetKeying(true)
	m.SetKeying(false)
	m.UpdateSettings(cfg)
	m.Stop()
}
