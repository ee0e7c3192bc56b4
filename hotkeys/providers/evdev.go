// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package providers

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	evdev "github.com/gvalkov/golang-evdev"
)

const evKey = 1 // EV_KEY event type

// EvdevProvider drives key registrations from Linux evdev input devices:
// a dedicated paddle/straight-key USB interface if devicePath is set, or
// every readable keyboard-capable device otherwise.
type EvdevProvider struct {
	devicePath string

	mu        sync.Mutex
	devices   []*evdev.InputDevice
	callbacks map[uint16]EdgeCallback // keyed by evdev key code

	stop      chan struct{}
	listening bool
}

// NewEvdevProvider returns an EvdevProvider. devicePath may be empty to
// auto-discover every key-capable input device.
func NewEvdevProvider(devicePath string) *EvdevProvider {
	return &EvdevProvider{
		devicePath: devicePath,
		callbacks:  make(map[uint16]EdgeCallback),
	}
}

// IsSupported reports whether at least one usable input device is found.
func (p *EvdevProvider) IsSupported() bool {
	devices, err := p.findDevices()
	if err != nil || len(devices) == 0 {
		return false
	}
	for _, d := range devices {
		_ = d.File.Close()
	}
	return true
}

func (p *EvdevProvider) findDevices() ([]*evdev.InputDevice, error) {
	if p.devicePath != "" {
		dev, err := evdev.Open(p.devicePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", p.devicePath, err)
		}
		return []*evdev.InputDevice{dev}, nil
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	var devices []*evdev.InputDevice
	for _, path := range paths {
		dev, err := evdev.Open(path)
		if err != nil {
			log.Printf("Warning: could not open input device %s: %v", path, err)
			continue
		}
		if hasKeyEvents(dev) {
			devices = append(devices, dev)
		} else {
			_ = dev.File.Close()
		}
	}
	return devices, nil
}

func hasKeyEvents(dev *evdev.InputDevice) bool {
	for evType := range dev.Capabilities {
		if evType.Type == evKey {
			return len(dev.Capabilities[evType]) > 0
		}
	}
	return false
}

// RegisterKey arms callback for keyName (a kernel key name, e.g.
// "KEY_LEFTCTRL"). Unknown names are rejected.
func (p *EvdevProvider) RegisterKey(keyName string, callback EdgeCallback) error {
	code, ok := keyCodeByName(keyName)
	if !ok {
		return fmt.Errorf("unknown evdev key name: %s", keyName)
	}
	p.mu.Lock()
	p.callbacks[code] = callback
	p.mu.Unlock()
	return nil
}

// Start opens the configured device(s) and begins dispatching edges to
// registered callbacks.
func (p *EvdevProvider) Start() error {
	p.mu.Lock()
	if p.listening {
		p.mu.Unlock()
		return fmt.Errorf("evdev provider already started")
	}
	devices, err := p.findDevices()
	if err != nil {
		p.mu.Unlock()
		return err
	}
	if len(devices) == 0 {
		p.mu.Unlock()
		return fmt.Errorf("no usable input devices found")
	}
	p.devices = devices
	p.stop = make(chan struct{})
	p.listening = true
	p.mu.Unlock()

	for i := range devices {
		go p.readLoop(devices[i])
	}
	return nil
}

func (p *EvdevProvider) readLoop(dev *evdev.InputDevice) {
	for {
		select {
		case <-p.stop:
			return
		default:
		}

		events, err := dev.Read()
		if err != nil {
			continue
		}
		for _, ev := range events {
			if ev.Type != evKey {
				continue
			}
			p.dispatch(ev)
		}
	}
}

func (p *EvdevProvider) dispatch(ev evdev.InputEvent) {
	// Value 2 is key-repeat; only edges (1=down, 0=up) matter to a keyer.
	if ev.Value != 0 && ev.Value != 1 {
		return
	}
	p.mu.Lock()
	cb := p.callbacks[ev.Code]
	p.mu.Unlock()
	if cb != nil {
		cb(ev.Value == 1)
	}
}

// Stop closes every opened device and stops dispatching.
func (p *EvdevProvider) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.listening {
		return
	}
	close(p.stop)
	for _, d := range p.devices {
		_ = d.File.Close()
	}
	p.devices = nil
	p.listening = false
}

func keyCodeByName(name string) (uint16, bool) {
	for code, n := range evdev.KEY {
		if n == name {
			return code, true
		}
	}
	return 0, false
}
