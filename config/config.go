// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/audpod/audpod/display"
	"github.com/audpod/audpod/power"
	"github.com/audpod/audpod/readbuf"
)

// Profile is the complete player configuration.
type Profile struct {
	Buffer  Buffer  `yaml:"buffer"`
	Output  Output  `yaml:"output"`
	Display Display `yaml:"display"`
	Power   Power   `yaml:"power"`
}

// Buffer fixes the read-ahead buffer geometry. All sizes are in bytes.
type Buffer struct {
	Size      int `yaml:"size"`       // consumer window capacity
	Threshold int `yaml:"threshold"`  // refill low-water mark; 0 disables auto refill
	SlotSize  int `yaml:"slot_size"`  // bytes moved per storage read
	SlotCount int `yaml:"slot_count"` // slots in the transfer pool
}

// Output selects the playback device.
type Output struct {
	SampleRate int  `yaml:"sample_rate"` // device rate in Hz
	Headless   bool `yaml:"headless"`    // drain samples without a sound card
}

// Display sizes the text canvas and sets the backlight policy.
type Display struct {
	Rows          int `yaml:"rows"`
	Cols          int `yaml:"cols"`
	BacklightHigh int `yaml:"backlight_high"` // PWM level while active
	BacklightLow  int `yaml:"backlight_low"`  // PWM level when idle
	DimAfterS     int `yaml:"dim_after_s"`    // idle seconds before dimming
}

// Power sets the battery monitor thresholds.
type Power struct {
	LowBatteryMV   int `yaml:"low_battery_mv"`
	CheckIntervalS int `yaml:"check_interval_s"`
}

// Default returns the profile the player runs with when no config file
// is given: the stock buffer geometry, a 44.1 kHz device and a
// five-line display.
func Default() *Profile {
	buf := readbuf.DefaultOptions()

	return &Profile{
		Buffer: Buffer{
			Size:      buf.BufferSize,
			Threshold: buf.FillThreshold,
			SlotSize:  buf.SlotSize,
			SlotCount: buf.SlotCount,
		},
		Output: Output{
			SampleRate: 44100,
		},
		Display: Display{
			Rows:          display.DefaultRows,
			Cols:          display.DefaultCols,
			BacklightHigh: power.DefaultHighLevel,
			BacklightLow:  power.DefaultLowLevel,
			DimAfterS:     10,
		},
		Power: Power{
			LowBatteryMV:   power.DefaultLowThreshold,
			CheckIntervalS: int(power.DefaultCheckInterval / time.Second),
		},
	}
}

// Load reads a YAML profile from path. Omitted keys keep their default
// values, so a partial file only has to name what it changes.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return p, nil
}

// BufferOptions converts the buffer section into read-ahead buffer
// geometry.
func (p *Profile) BufferOptions() readbuf.Options {
	return readbuf.Options{
		BufferSize:    p.Buffer.Size,
		FillThreshold: p.Buffer.Threshold,
		SlotSize:      p.Buffer.SlotSize,
		SlotCount:     p.Buffer.SlotCount,
	}
}

// MonitorOptions converts the power section into battery monitor
// settings. OnLow is left for the caller to set.
func (p *Profile) MonitorOptions() power.MonitorOptions {
	return power.MonitorOptions{
		CheckInterval: time.Duration(p.Power.CheckIntervalS) * time.Second,
		LowThreshold:  uint16(p.Power.LowBatteryMV),
	}
}
