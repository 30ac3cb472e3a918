// SPDX-License-Identifier: EPL-2.0

package power

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultLowThreshold is the voltage below which the battery is
	// considered too low to keep playing, in millivolts.
	DefaultLowThreshold = 2900

	// DefaultCheckInterval is the time between battery samples.
	DefaultCheckInterval = 5 * time.Second

	// initialReading is reported before the first sample lands. Low
	// stays false during startup.
	initialReading = 4200
)

// Sampler reads the battery voltage. Implementations return calibrated
// millivolts; ADC scaling and voltage-divider math happen upstream.
type Sampler interface {
	ReadMillivolts() (uint16, error)
}

// ChargeSense is implemented by samplers that can also tell whether a
// charger is attached.
type ChargeSense interface {
	Charging() bool
}

// MonitorOptions configures a battery monitor. The zero value selects
// the defaults.
type MonitorOptions struct {
	// CheckInterval is the time between samples. Zero selects
	// DefaultCheckInterval.
	CheckInterval time.Duration

	// LowThreshold is the low-battery cutoff in millivolts. A reading
	// strictly below it counts as low. Zero selects
	// DefaultLowThreshold.
	LowThreshold uint16

	// OnLow, when set, is called from the monitor goroutine each time a
	// reading descends below the threshold. It fires once per descent:
	// the voltage has to recover above the threshold before another
	// call can happen.
	OnLow func(millivolts uint16)
}

// Monitor periodically samples the battery and keeps the latest
// reading available without blocking the caller.
type Monitor struct {
	sampler   Sampler
	interval  time.Duration
	threshold uint16
	onLow     func(uint16)

	reading atomic.Uint32
	low     atomic.Bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewMonitor returns a monitor for the given sampler. Until the first
// sample lands it reports a full battery.
func NewMonitor(s Sampler, opts MonitorOptions) *Monitor {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	if opts.LowThreshold == 0 {
		opts.LowThreshold = DefaultLowThreshold
	}

	m := &Monitor{
		sampler:   s,
		interval:  opts.CheckInterval,
		threshold: opts.LowThreshold,
		onLow:     opts.OnLow,
	}
	m.reading.Store(initialReading)

	return m
}

// Start samples the battery once right away and then every check
// interval until Stop is called or the context is canceled.
func (m *Monitor) Start(ctx context.Context) error {
	if m.sampler == nil {
		return ErrNoSampler
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stop != nil {
		return ErrAlreadyRunning
	}

	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go m.run(ctx, m.stop, m.done)

	return nil
}

// Stop halts sampling and waits for the monitor goroutine to exit. It
// is safe to call more than once, and the monitor can be started
// again afterwards.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stop == nil {
		return
	}

	close(m.stop)
	<-m.done
	m.stop = nil
	m.done = nil
}

// Millivolts returns the most recent battery reading.
func (m *Monitor) Millivolts() uint16 {
	return uint16(m.reading.Load())
}

// Low reports whether the most recent reading is below the threshold.
func (m *Monitor) Low() bool {
	return m.low.Load()
}

// Charging reports whether a charger is attached. Samplers without
// charge detection always report false.
func (m *Monitor) Charging() bool {
	if cs, ok := m.sampler.(ChargeSense); ok {
		return cs.Charging()
	}
	return false
}

func (m *Monitor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	wasLow := false
	m.sample(&wasLow)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			m.sample(&wasLow)
		}
	}
}

// sample reads the battery once. A failed read keeps the previous
// value.
func (m *Monitor) sample(wasLow *bool) {
	mv, err := m.sampler.ReadMillivolts()
	if err != nil {
		slog.Error("power: battery sample failed", "err", err)
		return
	}

	m.reading.Store(uint32(mv))

	low := mv < m.threshold
	m.low.Store(low)

	if low && !*wasLow && m.onLow != nil {
		m.onLow(mv)
	}
	*wasLow = low
}
