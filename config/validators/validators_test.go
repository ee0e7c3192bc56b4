// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package validators

import (
	"testing"

	"github.com/hamkit/gocw/config/models"
)

func defaultTestConfig() models.Config {
	var cfg models.Config
	cfg.Keyer.SpeedWPM = 18
	cfg.Keyer.FrequencyHz = 600
	cfg.Keyer.VolumePct = 70
	cfg.Output.Sink = models.SinkModeNull
	cfg.Output.Amplitude = 0.5
	cfg.Input.Provider = models.ProviderAuto
	return cfg
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := defaultTestConfig()
	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("ValidateConfig(defaults): %v", err)
	}
}

func TestValidateConfigCorrectsOutOfRangeSpeed(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Keyer.SpeedWPM = 999

	err := ValidateConfig(&cfg)
	if err == nil {
		t.Fatalf("expected a validation error for out-of-range speed")
	}
	if cfg.Keyer.SpeedWPM != 18 {
		t.Fatalf("SpeedWPM after correction = %d, want 18", cfg.Keyer.SpeedWPM)
	}
}

func TestValidateConfigCorrectsInvalidSink(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Output.Sink = "speaker"

	if err := ValidateConfig(&cfg); err == nil {
		t.Fatalf("expected a validation error for an invalid sink")
	}
	if cfg.Output.Sink != models.SinkModeNull {
		t.Fatalf("Sink after correction = %s, want %s", cfg.Output.Sink, models.SinkModeNull)
	}
}

func TestValidateConfigRejectsInvalidTransportPortOnlyWhenEnabled(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Transport.Port = -1
	cfg.Transport.Enabled = false
	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("disabled transport with bad port should not fail validation: %v", err)
	}

	cfg.Transport.Enabled = true
	if err := ValidateConfig(&cfg); err == nil {
		t.Fatalf("expected a validation error for an invalid enabled transport port")
	}
	if cfg.Transport.Port != 8080 {
		t.Fatalf("Port after correction = %d, want 8080", cfg.Transport.Port)
	}
}
