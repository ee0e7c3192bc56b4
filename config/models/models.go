// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package models

// Sink mode constants, used for config.Output.Sink.
const (
	SinkModeNull = "null"
	SinkModeWav  = "wav"
)

// Hotkey provider constants, used for config.Input.Provider.
const (
	ProviderAuto  = "auto"
	ProviderEvdev = "evdev"
	ProviderDummy = "dummy"
)

// Config is the on-disk configuration for a gocw daemon.
type Config struct {
	General struct {
		Debug   bool   `yaml:"debug"`
		LogFile string `yaml:"log_file"`
	} `yaml:"general"`

	// Keying parameters, loaded into the Parameter Synchroniser at
	// startup and re-appliable at runtime via the control surface.
	Keyer struct {
		SpeedWPM   int  `yaml:"speed_wpm"`
		FrequencyHz int  `yaml:"frequency_hz"`
		VolumePct  int  `yaml:"volume_pct"`
		GapDits    int  `yaml:"gap_dits"`
		Tolerance  int  `yaml:"tolerance_pct"`
		Weighting  int  `yaml:"weighting_pct"`
		CurtisB    bool `yaml:"curtis_b"`
	} `yaml:"keyer"`

	// Input settings: which physical key/paddle source feeds the Key.
	Input struct {
		Provider     string `yaml:"provider"`      // "auto" | "evdev" | "dummy"
		Device       string `yaml:"device"`        // evdev device node, e.g. /dev/input/event4
		DotPaddleKey string `yaml:"dot_paddle_key"`  // evdev key name, e.g. "KEY_LEFTCTRL"
		DashPaddleKey string `yaml:"dash_paddle_key"`
		StraightKeyKey string `yaml:"straight_key_key"`
	} `yaml:"input"`

	// Output settings: how keyed tones are rendered.
	Output struct {
		Sink       string  `yaml:"sink"`        // "null" | "wav"
		WavPath    string  `yaml:"wav_path"`
		Amplitude  float64 `yaml:"amplitude"`
	} `yaml:"output"`

	// Transport settings: the read-only websocket server broadcasting
	// keying events (clients can only send keepalive pings).
	Transport struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		AuthToken   string `yaml:"auth_token"`
		APIVersion  string `yaml:"api_version"`
		MaxClients  int    `yaml:"max_clients"`
		LogRequests bool   `yaml:"log_requests"`
		CORSOrigins string `yaml:"cors_origins"`
	} `yaml:"transport"`

	// IPC settings: the D-Bus control surface.
	IPC struct {
		Enabled   bool   `yaml:"enabled"`
		BusName   string `yaml:"bus_name"`
		ObjectPath string `yaml:"object_path"`
	} `yaml:"ipc"`

	// Tray settings: the status-icon indicator.
	Tray struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tray"`

	// Security settings guarding the config file itself against tampering.
	Security struct {
		CheckIntegrity    bool   `yaml:"check_integrity"`
		ConfigHash        string `yaml:"config_hash"`
		MaxConfigFileSize int64  `yaml:"max_config_file_size"`
	} `yaml:"security"`
}
