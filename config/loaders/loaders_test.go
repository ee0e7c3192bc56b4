// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamkit/gocw/config/models"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}
	if cfg.Keyer.SpeedWPM != 18 {
		t.Fatalf("SpeedWPM = %d, want default 18", cfg.Keyer.SpeedWPM)
	}
}

func TestLoadConfigRejectsPathTraversal(t *testing.T) {
	if _, err := LoadConfig("../../etc/passwd"); err == nil {
		t.Fatalf("expected an error for a path containing '..'")
	}
}

func TestLoadConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gocw.yaml")
	contents := "keyer:\n  speed_wpm: 25\n  curtis_b: false\n"
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Keyer.SpeedWPM != 25 {
		t.Fatalf("SpeedWPM = %d, want 25", cfg.Keyer.SpeedWPM)
	}
	if cfg.Keyer.CurtisB {
		t.Fatalf("CurtisB = true, want false as configured")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gocw.yaml")

	var cfg models.Config
	SetDefaultConfig(&cfg)
	cfg.Keyer.SpeedWPM = 30

	if err := SaveConfig(path, &cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if loaded.Keyer.SpeedWPM != 30 {
		t.Fatalf("round-tripped SpeedWPM = %d, want 30", loaded.Keyer.SpeedWPM)
	}
}
