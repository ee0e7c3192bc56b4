// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamkit/gocw/config/models"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "gocw.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestVerifyConfigIntegritySkippedWhenDisabled(t *testing.T) {
	path := writeTempConfig(t, "keyer:\n  speed_wpm: 20\n")
	cfg := &models.Config{}
	cfg.Security.CheckIntegrity = false
	if err := VerifyConfigIntegrity(path, cfg); err != nil {
		t.Fatalf("VerifyConfigIntegrity with checking disabled: %v", err)
	}
}

func TestUpdateThenVerifyConfigIntegritySucceeds(t *testing.T) {
	path := writeTempConfig(t, "keyer:\n  speed_wpm: 20\n")
	cfg := &models.Config{}
	cfg.Security.CheckIntegrity = true

	if err := UpdateConfigHash(path, cfg); err != nil {
		t.Fatalf("UpdateConfigHash: %v", err)
	}
	if err := VerifyConfigIntegrity(path, cfg); err != nil {
		t.Fatalf("VerifyConfigIntegrity after UpdateConfigHash: %v", err)
	}
}

func TestVerifyConfigIntegrityDetectsTampering(t *testing.T) {
	path := writeTempConfig(t, "keyer:\n  speed_wpm: 20\n")
	cfg := &models.Config{}
	cfg.Security.CheckIntegrity = true
	if err := UpdateConfigHash(path, cfg); err != nil {
		t.Fatalf("UpdateConfigHash: %v", err)
	}

	if err := os.WriteFile(path, []byte("keyer:\n  speed_wpm: 60\n"), 0600); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	if err := VerifyConfigIntegrity(path, cfg); err == nil {
		t.Fatalf("expected a hash mismatch error after tampering")
	}
}

func TestEnforceFileSizeLimit(t *testing.T) {
	path := writeTempConfig(t, "keyer:\n  speed_wpm: 20\n")
	cfg := &models.Config{}
	cfg.Security.MaxConfigFileSize = 4

	if err := EnforceFileSizeLimit(path, cfg); err == nil {
		t.Fatalf("expected an oversize error")
	}

	cfg.Security.MaxConfigFileSize = 1024
	if err := EnforceFileSizeLimit(path, cfg); err != nil {
		t.Fatalf("EnforceFileSizeLimit within the limit: %v", err)
	}
}
