// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package validators corrects out-of-range values in an on-disk Config.
// This is deliberately more lenient than params.Params's strict setters:
// a YAML typo should not keep the daemon from starting (see DESIGN.md).
package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hamkit/gocw/config/models"
	"github.com/hamkit/gocw/params"
)

// ValidateConfig inspects config for invalid values, correcting each to a
// safe default and returning an error aggregating every issue found. The
// corrected config is always usable even when an error is returned.
func ValidateConfig(config *models.Config) error {
	var issues []string

	if config.Keyer.SpeedWPM < params.MinWPM || config.Keyer.SpeedWPM > params.MaxWPM {
		issues = append(issues, fmt.Sprintf("invalid speed_wpm: %d, correcting to 18", config.Keyer.SpeedWPM))
		config.Keyer.SpeedWPM = 18
	}
	if config.Keyer.FrequencyHz < params.MinFrequencyHz || config.Keyer.FrequencyHz > params.MaxFrequencyHz {
		issues = append(issues, fmt.Sprintf("invalid frequency_hz: %d, correcting to 600", config.Keyer.FrequencyHz))
		config.Keyer.FrequencyHz = 600
	}
	if config.Keyer.VolumePct < params.MinVolumePct || config.Keyer.VolumePct > params.MaxVolumePct {
		issues = append(issues, fmt.Sprintf("invalid volume_pct: %d, correcting to 70", config.Keyer.VolumePct))
		config.Keyer.VolumePct = 70
	}
	if config.Keyer.Weighting < params.MinWeightFrac || config.Keyer.Weighting > params.MaxWeightFrac {
		issues = append(issues, fmt.Sprintf("invalid weighting_pct: %d, correcting to 0", config.Keyer.Weighting))
		config.Keyer.Weighting = 0
	}

	validSinks := map[string]bool{models.SinkModeNull: true, models.SinkModeWav: true}
	if !validSinks[config.Output.Sink] {
		issues = append(issues, fmt.Sprintf("invalid output sink: %s, correcting to 'null'", config.Output.Sink))
		config.Output.Sink = models.SinkModeNull
	}
	if config.Output.Amplitude < 0 || config.Output.Amplitude > 1 {
		issues = append(issues, fmt.Sprintf("invalid amplitude: %v, correcting to 0.5", config.Output.Amplitude))
		config.Output.Amplitude = 0.5
	}

	validProviders := map[string]bool{models.ProviderAuto: true, models.ProviderEvdev: true, models.ProviderDummy: true}
	if !validProviders[config.Input.Provider] {
		issues = append(issues, fmt.Sprintf("invalid input provider: %s, correcting to 'auto'", config.Input.Provider))
		config.Input.Provider = models.ProviderAuto
	}

	if config.Transport.Enabled {
		if config.Transport.Port <= 0 || config.Transport.Port > 65535 {
			issues = append(issues, fmt.Sprintf("invalid transport port: %d, correcting to 8080", config.Transport.Port))
			config.Transport.Port = 8080
		}
		if config.Transport.Host == "" {
			config.Transport.Host = "localhost"
		} else if !hostRegex.MatchString(config.Transport.Host) {
			issues = append(issues, fmt.Sprintf("invalid transport host: %s, correcting to 'localhost'", config.Transport.Host))
			config.Transport.Host = "localhost"
		}
		if config.Transport.MaxClients < 0 {
			issues = append(issues, fmt.Sprintf("invalid transport max_clients: %d, correcting to 10", config.Transport.MaxClients))
			config.Transport.MaxClients = 10
		}
		if config.Transport.CORSOrigins == "" {
			config.Transport.CORSOrigins = "*"
		}
	}

	if config.IPC.Enabled && config.IPC.BusName == "" {
		issues = append(issues, "ipc enabled with empty bus_name, correcting to 'org.gocw.Keyer'")
		config.IPC.BusName = "org.gocw.Keyer"
	}

	if len(issues) > 0 {
		return fmt.Errorf("configuration validation issues: %s", strings.Join(issues, "; "))
	}
	return nil
}

var hostRegex = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)
