// SPDX-License-Identifier: EPL-2.0

// Package power watches the battery and manages display backlight
// dimming for portable players.
//
// # Battery Monitoring
//
// Monitor samples a Sampler on a fixed interval and keeps the latest
// reading in atomics, so UI code can poll Millivolts and Low from any
// goroutine without blocking on the ADC:
//
//	mon := power.NewMonitor(sampler, power.MonitorOptions{
//		OnLow: func(mv uint16) {
//			slog.Warn("battery low", "millivolts", mv)
//		},
//	})
//	if err := mon.Start(ctx); err != nil {
//		return err
//	}
//	defer mon.Stop()
//
// A reading strictly below the threshold counts as low. OnLow fires
// once per descent: the voltage has to climb back above the threshold
// before another low crossing can fire it again. Failed reads are
// logged and skipped, keeping the previous value, so a single flaky
// conversion never shuts the player down.
//
// Samplers that also implement ChargeSense let Charging report whether
// a charger is attached.
//
// # Backlight
//
// Backlight tracks how long the user has been idle and picks between a
// high and a low PWM level. The UI loop calls Tick once per cycle and
// Poke on every keypress:
//
//	bl := power.NewBacklight(128, 16, 200)
//	for range uiTicker.C {
//		bl.Tick()
//		pwm.Set(bl.Level() * bl.Level())
//	}
//
// The levels are raw PWM steps; squaring them before the hardware
// write makes the dimming curve look linear.
package power
