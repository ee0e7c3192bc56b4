// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package loaders reads and writes gocw's YAML configuration file.
package loaders

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/config/validators"
	yaml "gopkg.in/yaml.v2"
)

// LoadConfig reads filename, applying defaults first and correcting any
// out-of-range values found afterward (logged, not fatal — a daemon
// should still start with a sane configuration). A missing file is not
// an error: the defaults are returned as-is.
func LoadConfig(filename string) (*models.Config, error) {
	var config models.Config
	SetDefaultConfig(&config)

	clean := filepath.Clean(filename)
	if strings.Contains(clean, "..") {
		return nil, fmt.Errorf("invalid config path: %s", filename)
	}
	// #nosec G304 -- path is cleaned and traversal-checked above.
	data, err := os.ReadFile(clean)
	if err != nil {
		log.Printf("Warning: could not read config file: %v", err)
		log.Println("Using default configuration")
		return &config, nil
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := validators.ValidateConfig(&config); err != nil {
		log.Printf("Configuration validation error: %v", err)
		log.Println("Using validated configuration with corrections")
	}

	return &config, nil
}

// SaveConfig writes config back to filename in YAML form.
func SaveConfig(filename string, config *models.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	clean := filepath.Clean(filename)
	// #nosec G306 -- config files are not secrets; 0644 matches the teacher's save path.
	if err := os.WriteFile(clean, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetDefaultConfig populates config with gocw's built-in defaults.
func SetDefaultConfig(config *models.Config) {
	config.General.Debug = false
	config.General.LogFile = ""

	config.Keyer.SpeedWPM = 18
	config.Keyer.FrequencyHz = 600
	config.Keyer.VolumePct = 70
	config.Keyer.GapDits = 0
	config.Keyer.Tolerance = 50
	config.Keyer.Weighting = 0
	config.Keyer.CurtisB = true

	config.Input.Provider = models.ProviderAuto
	config.Input.Device = ""
	config.Input.DotPaddleKey = "KEY_LEFTCTRL"
	config.Input.DashPaddleKey = "KEY_RIGHTCTRL"
	config.Input.StraightKeyKey = "KEY_SPACE"

	config.Output.Sink = models.SinkModeNull
	config.Output.WavPath = ""
	config.Output.Amplitude = 0.5

	config.Transport.Enabled = false
	config.Transport.Host = "localhost"
	config.Transport.Port = 8080
	config.Transport.AuthToken = ""
	config.Transport.APIVersion = "v1"
	config.Transport.MaxClients = 10
	config.Transport.LogRequests = false
	config.Transport.CORSOrigins = "*"

	config.IPC.Enabled = false
	config.IPC.BusName = "org.gocw.Keyer"
	config.IPC.ObjectPath = "/org/gocw/Keyer"

	config.Tray.Enabled = false

	config.Security.CheckIntegrity = false
	config.Security.ConfigHash = ""
	config.Security.MaxConfigFileSize = 1024 * 1024
}
