// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package dbus exposes the Parameter Synchroniser and Curtis-B setting
// as a D-Bus session service, grounded on the teacher's session-bus
// connect/introspect/signal-match pattern (originally used there as a
// GlobalShortcuts portal client, reused here the other way round: gocw
// is the service being called, not the caller).
package dbus

import (
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/hamkit/gocw/generator"
	"github.com/hamkit/gocw/internal/logger"
	"github.com/hamkit/gocw/key"
	"github.com/hamkit/gocw/params"
)

const introspectXML = `
<node>
	<interface name="org.gocw.Keyer">
		<method name="GetParameters">
			<arg direction="out" type="iiiiiib" name="wpm_freq_vol_gap_tol_weight_curtisb"/>
		</method>
		<method name="SetSpeed"><arg direction="in" type="i" name="wpm"/></method>
		<method name="SetFrequency"><arg direction="in" type="i" name="hz"/></method>
		<method name="SetVolume"><arg direction="in" type="i" name="pct"/></method>
		<method name="SetGap"><arg direction="in" type="i" name="dits"/></method>
		<method name="SetTolerance"><arg direction="in" type="i" name="pct"/></method>
		<method name="SetWeighting"><arg direction="in" type="i" name="pct"/></method>
		<method name="SetCurtisB"><arg direction="in" type="b" name="enabled"/></method>
		<method name="Reset"></method>
	</interface>` + introspect.IntrospectDataString + `
</node>`

// Service publishes the keyer's Parameter Synchroniser and Curtis-B
// toggle over D-Bus, and applies edits to a bound Generator/Key.
type Service struct {
	conn *godbus.Conn

	busName    string
	objectPath godbus.ObjectPath

	params *params.Params
	gen    *generator.Generator
	k      *key.Key
	logger logger.Logger
}

// New builds a Service. Call Start to connect and publish it.
func New(busName, objectPath string, p *params.Params, gen *generator.Generator, k *key.Key, log logger.Logger) *Service {
	return &Service{
		busName:    busName,
		objectPath: godbus.ObjectPath(objectPath),
		params:     p,
		gen:        gen,
		k:          k,
		logger:     log,
	}
}

// Start connects to the session bus, requests busName and exports the
// service's methods at objectPath.
func (s *Service) Start() error {
	conn, err := godbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, s.objectPath, "org.gocw.Keyer"); err != nil {
		_ = conn.Close()
		return fmt.Errorf("exporting keyer service: %w", err)
	}
	if err := conn.Export(introspect.Introspectable(introspectXML), s.objectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		_ = conn.Close()
		return fmt.Errorf("exporting introspection: %w", err)
	}

	reply, err := conn.RequestName(s.busName, godbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("requesting bus name %s: %w", s.busName, err)
	}
	if reply != godbus.RequestNameReplyPrimaryOwner {
		_ = conn.Close()
		return fmt.Errorf("bus name %s already owned", s.busName)
	}

	s.logger.Info("D-Bus keyer service published as %s at %s", s.busName, s.objectPath)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Service) Stop() {
	if s.conn == nil {
		return
	}
	if _, err := s.conn.ReleaseName(s.busName); err != nil {
		s.logger.Debug("ReleaseName error: %v", err)
	}
	if err := s.conn.Close(); err != nil {
		s.logger.Debug("D-Bus connection close error: %v", err)
	}
	s.conn = nil
}

func (s *Service) sync() *godbus.Error {
	if err := s.gen.SyncParameters(); err != nil {
		return godbus.MakeFailedError(err)
	}
	return nil
}

// GetParameters returns (wpm, freqHz, volumePct, gapDits, tolerancePct,
// weightingPct, curtisB).
func (s *Service) GetParameters() (int, int, int, int, int, int, bool, *godbus.Error) {
	return s.params.WPM(), s.params.Frequency(), s.params.Volume(), s.params.Gap(),
		s.params.Tolerance(), s.params.Weighting(), s.params.CurtisB(), nil
}

// SetSpeed sets the send speed in words per minute.
func (s *Service) SetSpeed(wpm int) *godbus.Error {
	if err := s.params.SetWPM(wpm); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetFrequency sets the sidetone frequency in Hz.
func (s *Service) SetFrequency(hz int) *godbus.Error {
	if err := s.params.SetFrequency(hz); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetVolume sets the sidetone volume as a percentage.
func (s *Service) SetVolume(pct int) *godbus.Error {
	if err := s.params.SetVolume(pct); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetGap sets the extra inter-character gap in dot units.
func (s *Service) SetGap(dits int) *godbus.Error {
	if err := s.params.SetGap(dits); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetTolerance sets the receiver's timing tolerance percentage.
func (s *Service) SetTolerance(pct int) *godbus.Error {
	if err := s.params.SetTolerance(pct); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetWeighting sets the dot/dash weighting percentage.
func (s *Service) SetWeighting(pct int) *godbus.Error {
	if err := s.params.SetWeighting(pct); err != nil {
		return godbus.MakeFailedError(err)
	}
	return s.sync()
}

// SetCurtisB toggles Curtis iambic keyer mode B.
func (s *Service) SetCurtisB(enabled bool) *godbus.Error {
	s.params.SetCurtisB(enabled)
	if enabled {
		s.k.IKEnableCurtisB()
	} else {
		s.k.IKDisableCurtisB()
	}
	return s.sync()
}

// Reset silences and idles the bound Key.
func (s *Service) Reset() *godbus.Error {
	s.k.SKReset()
	s.k.IKReset()
	return nil
}
