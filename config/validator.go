// SPDX-License-Identifier: EPL-2.0

package config

import "fmt"

// Validate fills in defaults for zero-valued required fields and
// rejects values the player cannot run with. It mutates the profile.
//
// Buffer.Threshold is the one field where zero is meaningful (it
// disables automatic refills), so it is range-checked but never
// defaulted here.
func Validate(p *Profile) error {
	def := Default()

	if p.Buffer.Size == 0 {
		p.Buffer.Size = def.Buffer.Size
	}
	if p.Buffer.SlotSize == 0 {
		p.Buffer.SlotSize = def.Buffer.SlotSize
	}
	if p.Buffer.SlotCount == 0 {
		p.Buffer.SlotCount = def.Buffer.SlotCount
	}
	if err := p.BufferOptions().Validate(); err != nil {
		return fmt.Errorf("buffer: %w", err)
	}

	if p.Output.SampleRate == 0 {
		p.Output.SampleRate = def.Output.SampleRate
	}
	if p.Output.SampleRate < 8000 || p.Output.SampleRate > 192000 {
		return fmt.Errorf("%w: output.sample_rate %d outside [8000, 192000]",
			ErrInvalidProfile, p.Output.SampleRate)
	}

	if p.Display.Rows == 0 {
		p.Display.Rows = def.Display.Rows
	}
	if p.Display.Cols == 0 {
		p.Display.Cols = def.Display.Cols
	}
	if p.Display.Rows < 0 || p.Display.Cols < 0 {
		return fmt.Errorf("%w: display geometry %dx%d",
			ErrInvalidProfile, p.Display.Rows, p.Display.Cols)
	}
	if p.Display.BacklightHigh < 0 || p.Display.BacklightHigh > 255 {
		return fmt.Errorf("%w: display.backlight_high %d outside [0, 255]",
			ErrInvalidProfile, p.Display.BacklightHigh)
	}
	if p.Display.BacklightLow < 0 || p.Display.BacklightLow > 255 {
		return fmt.Errorf("%w: display.backlight_low %d outside [0, 255]",
			ErrInvalidProfile, p.Display.BacklightLow)
	}
	if p.Display.DimAfterS < 0 {
		return fmt.Errorf("%w: display.dim_after_s %d is negative",
			ErrInvalidProfile, p.Display.DimAfterS)
	}

	if p.Power.LowBatteryMV == 0 {
		p.Power.LowBatteryMV = def.Power.LowBatteryMV
	}
	if p.Power.LowBatteryMV < 0 || p.Power.LowBatteryMV > 65535 {
		return fmt.Errorf("%w: power.low_battery_mv %d outside [0, 65535]",
			ErrInvalidProfile, p.Power.LowBatteryMV)
	}
	if p.Power.CheckIntervalS == 0 {
		p.Power.CheckIntervalS = def.Power.CheckIntervalS
	}
	if p.Power.CheckIntervalS < 0 {
		return fmt.Errorf("%w: power.check_interval_s %d is negative",
			ErrInvalidProfile, p.Power.CheckIntervalS)
	}

	return nil
}
