// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package security guards the on-disk config file itself against
// unauthorized modification. Command-allowlisting is not carried over
// from the teacher: gocw never shells out to external programs (see
// DESIGN.md).
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/internal/logger"
)

var securityLogger logger.Logger = logger.NewDefaultLogger(logger.WarningLevel)

// VerifyConfigIntegrity checks filename's hash against config.Security's
// recorded value, when integrity checking is enabled and a hash has
// already been recorded.
func VerifyConfigIntegrity(filename string, config *models.Config) error {
	if !config.Security.CheckIntegrity {
		return nil
	}
	if config.Security.ConfigHash == "" {
		return nil
	}

	hash, err := CalculateFileHash(filename)
	if err != nil {
		return fmt.Errorf("failed to calculate config file hash: %w", err)
	}
	if hash != config.Security.ConfigHash {
		return fmt.Errorf("config file integrity check failed: hash mismatch")
	}
	return nil
}

// UpdateConfigHash recomputes filename's hash and stores it in config, to
// "seal" the config after an authorized change.
func UpdateConfigHash(filename string, config *models.Config) error {
	hash, err := CalculateFileHash(filename)
	if err != nil {
		return fmt.Errorf("failed to calculate config file hash: %w", err)
	}
	config.Security.ConfigHash = hash
	return nil
}

// CalculateFileHash computes the SHA-256 hash of filename's contents.
func CalculateFileHash(filename string) (string, error) {
	safe := filepath.Clean(filename)
	if strings.Contains(safe, "\x00") {
		return "", fmt.Errorf("invalid filename")
	}

	// #nosec G304 -- path is cleaned and expected to be a controlled local config file.
	f, err := os.Open(safe)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			securityLogger.Warning("Failed to close file %s: %v", filename, err)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// EnforceFileSizeLimit rejects files larger than config's configured
// maximum, guarding against a corrupted or maliciously oversized config.
func EnforceFileSizeLimit(filename string, config *models.Config) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > config.Security.MaxConfigFileSize {
		return fmt.Errorf("file size exceeds limit: %d bytes (limit: %d bytes)",
			info.Size(), config.Security.MaxConfigFileSize)
	}
	return nil
}
