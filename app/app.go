// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package app assembles the keyer subsystem, the config-driven input
// provider, and the optional transport/ipc/tray surfaces into one
// runnable daemon.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/generator"
	"github.com/hamkit/gocw/hotkeys/manager"
	dbussvc "github.com/hamkit/gocw/ipc/dbus"
	"github.com/hamkit/gocw/key"
	"github.com/hamkit/gocw/params"
	"github.com/hamkit/gocw/receiver"
	"github.com/hamkit/gocw/sound"
	"github.com/hamkit/gocw/tonequeue"
	"github.com/hamkit/gocw/transport/ws"

	"github.com/hamkit/gocw/internal/logger"
	"github.com/hamkit/gocw/internal/tray"
)

// Sink is the subset of generator.Sink an App needs to close on Stop.
type Sink interface {
	Close() error
}

// App owns every collaborator assembled from a loaded Config and drives
// their lifecycle together.
type App struct {
	cfg        models.Config
	configPath string
	logger     logger.Logger

	params *params.Params
	tq     *tonequeue.ToneQueue
	gen    *generator.Generator
	rec    *receiver.TimingReceiver
	key    *key.Key
	sink   Sink

	hotkeys *manager.Manager
	ws      *ws.Server
	dbus    *dbussvc.Service
	tray    tray.Manager

	cancel context.CancelFunc
}

// New assembles every collaborator named by cfg. configPath is the file
// cfg was loaded from (used by the tray's "show config" action).
func New(cfg models.Config, configPath string, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, configPath: configPath, logger: log}

	a.params = params.New()
	if err := a.applyKeyerConfig(); err != nil {
		return nil, fmt.Errorf("applying keyer config: %w", err)
	}

	a.tq = tonequeue.New(tonequeue.DefaultCapacity, tonequeue.DefaultLowWaterMark)

	sink, err := buildSink(cfg)
	if err != nil {
		return nil, err
	}
	a.sink = sink

	a.gen = generator.New(a.tq, sink)
	a.gen.BindParams(a.params)
	if err := a.gen.SyncParameters(); err != nil {
		return nil, fmt.Errorf("syncing generator parameters: %w", err)
	}

	a.rec = receiver.New(a.params, func(key.Symbol) {})

	a.key = key.NewKey()
	if cfg.Keyer.CurtisB {
		a.key.IKEnableCurtisB()
	}
	a.key.RegisterGenerator(a.gen)
	a.key.RegisterReceiver(a.rec)
	a.gen.BindKey(a.key)

	hotkeysMgr, err := manager.New(cfg, a.key)
	if err != nil {
		return nil, fmt.Errorf("building hotkeys manager: %w", err)
	}
	a.hotkeys = hotkeysMgr

	a.ws = ws.NewServer(cfg, log)
	a.ws.BindKey(a.key)

	if cfg.IPC.Enabled {
		a.dbus = dbussvc.New(cfg.IPC.BusName, cfg.IPC.ObjectPath, a.params, a.gen, a.key, log)
	}

	if cfg.Tray.Enabled {
		a.tray = tray.CreateDefaultManager(log)
	} else {
		a.tray = tray.NewMockManager(log)
	}
	a.tray.UpdateSettings(cfg)
	a.tray.SetCoreActions(a.cycleSpeed, a.toggleCurtisB, a.showConfig, a.resetToDefaults, func() {})
	// The modern callback slot is taken by the websocket feed (ws.BindKey
	// above); the tray uses the legacy slot, which fires alongside it.
	a.key.RegisterLegacyKeyingCallback(func(arg interface{}, v key.KeyValue) {
		a.tray.SetKeying(v == key.Closed)
	}, nil)

	return a, nil
}

func buildSink(cfg models.Config) (generator.Sink, error) {
	switch cfg.Output.Sink {
	case models.SinkModeWav:
		f, err := os.Create(cfg.Output.WavPath)
		if err != nil {
			return nil, fmt.Errorf("creating wav output %s: %w", cfg.Output.WavPath, err)
		}
		return sound.NewWavSink(f, cfg.Output.Amplitude), nil
	default:
		return sound.NewNullSink(), nil
	}
}

func (a *App) applyKeyerConfig() error {
	if err := a.params.SetWPM(a.cfg.Keyer.SpeedWPM); err != nil {
		return err
	}
	if err := a.params.SetFrequency(a.cfg.Keyer.FrequencyHz); err != nil {
		return err
	}
	if err := a.params.SetVolume(a.cfg.Keyer.VolumePct); err != nil {
		return err
	}
	if err := a.params.SetGap(a.cfg.Keyer.GapDits); err != nil {
		return err
	}
	if err := a.params.SetTolerance(a.cfg.Keyer.Tolerance); err != nil {
		return err
	}
	if err := a.params.SetWeighting(a.cfg.Keyer.Weighting); err != nil {
		return err
	}
	a.params.SetCurtisB(a.cfg.Keyer.CurtisB)
	return nil
}

// Start launches every collaborator's background goroutines.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go a.gen.Run(ctx)

	if err := a.hotkeys.Start(); err != nil {
		return fmt.Errorf("starting hotkeys: %w", err)
	}
	if err := a.ws.Start(); err != nil {
		return fmt.Errorf("starting websocket feed: %w", err)
	}
	if a.dbus != nil {
		if err := a.dbus.Start(); err != nil {
			a.logger.Warning("D-Bus control surface unavailable: %v", err)
			a.dbus = nil
		}
	}
	a.tray.Start()
	return nil
}

// Stop tears down every collaborator in reverse order.
func (a *App) Stop() {
	a.tray.Stop()
	if a.dbus != nil {
		a.dbus.Stop()
	}
	a.ws.Stop()
	a.hotkeys.Stop()
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.sink.Close(); err != nil {
		a.logger.Warning("Error closing output sink: %v", err)
	}
}

// Key returns the assembled Key, for callers that need direct access
// (e.g. the legacy facade's test harness, or a CLI sending characters).
func (a *App) Key() *key.Key { return a.key }
