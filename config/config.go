// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package config provides configuration management with YAML loading,
// validation/correction, and config-file integrity checking.
//
// Subpackages:
//   - models:     the on-disk configuration schema.
//   - loaders:    load/save YAML, apply defaults.
//   - validators: correct out-of-range values, aggregating issues.
//   - security:   config-file tamper detection and size limits.
package config

import (
	"github.com/hamkit/gocw/config/loaders"
	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/config/security"
	"github.com/hamkit/gocw/config/validators"
)

// Config is an alias for models.Config, so callers need not import the
// models package directly.
type Config = models.Config

// Sink and hotkey provider constants, aliased for convenience.
const (
	SinkModeNull  = models.SinkModeNull
	SinkModeWav   = models.SinkModeWav
	ProviderAuto  = models.ProviderAuto
	ProviderEvdev = models.ProviderEvdev
	ProviderDummy = models.ProviderDummy
)

// Load loads configuration from filename.
func Load(filename string) (*Config, error) {
	return loaders.LoadConfig(filename)
}

// Save writes config to filename.
func Save(filename string, config *Config) error {
	return loaders.SaveConfig(filename, config)
}

// SetDefaultConfig applies gocw's built-in defaults to config.
func SetDefaultConfig(config *Config) {
	loaders.SetDefaultConfig(config)
}

// ValidateConfig corrects out-of-range values in config, returning an
// error describing every correction made.
func ValidateConfig(config *Config) error {
	return validators.ValidateConfig(config)
}

// VerifyConfigIntegrity checks filename against config's recorded hash.
func VerifyConfigIntegrity(filename string, config *Config) error {
	return security.VerifyConfigIntegrity(filename, config)
}

// UpdateConfigHash recomputes and stores filename's hash in config.
func UpdateConfigHash(filename string, config *Config) error {
	return security.UpdateConfigHash(filename, config)
}

// CalculateFileHash computes the SHA-256 hash of filename's contents.
func CalculateFileHash(filename string) (string, error) {
	return security.CalculateFileHash(filename)
}

// EnforceFileSizeLimit rejects filename if it exceeds config's configured
// maximum config-file size.
func EnforceFileSizeLimit(filename string, config *Config) error {
	return security.EnforceFileSizeLimit(filename, config)
}
