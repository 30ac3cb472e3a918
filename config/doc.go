// SPDX-License-Identifier: EPL-2.0

// Package config loads the player profile from a YAML file.
//
// A profile covers the read-ahead buffer geometry, the output device,
// the display and the battery monitor:
//
//	buffer:
//	  size: 8192
//	  threshold: 4096
//	  slot_size: 4096
//	  slot_count: 4
//	output:
//	  sample_rate: 44100
//	  headless: false
//	display:
//	  rows: 5
//	  cols: 20
//	  backlight_high: 128
//	  backlight_low: 16
//	  dim_after_s: 10
//	power:
//	  low_battery_mv: 2900
//	  check_interval_s: 5
//
// Load starts from Default and overlays the file on top, so a partial
// profile only has to name the fields it changes. Validate runs as
// part of Load and rejects geometry the buffer cannot sustain, sample
// rates outside [8000, 192000] Hz and PWM levels outside [0, 255].
//
// The conversion helpers BufferOptions and MonitorOptions hand the
// relevant sections to the readbuf and power packages in their own
// types.
package config
