package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pifand/internal/configuration"
	"pifand/internal/fans"
	"pifand/internal/policy"
	"pifand/internal/sensors"
	"pifand/internal/ui"
	"pifand/internal/util"
)

type FanController interface {
	// Run acquires the fan output and starts the control loop. It returns
	// when ctx is cancelled or when a sensor read or fan write fails.
	// The shutdown sequence runs on every exit path.
	Run(ctx context.Context) error

	// UpdateFanSpeed runs a single sample-evaluate-actuate cycle
	UpdateFanSpeed() error

	// Snapshot returns a copy of the most recent controller state
	Snapshot() Snapshot
}

// Snapshot is the read model of the controller for the API, statistics
// and MQTT reporting. Copied out under the lock, never shared.
type Snapshot struct {
	Temperature float64   `json:"temperature"`
	DutyCycle   float64   `json:"dutyCycle"`
	Activated   bool      `json:"activated"`
	Ticks       uint64    `json:"ticks"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

type fanController struct {
	sensor    sensors.Sensor
	fan       fans.Fan
	settings  policy.Settings
	tickRate  time.Duration
	avgWindow int

	// the hysteresis latch, owned by the control loop goroutine
	activated bool

	mu       sync.Mutex
	snapshot Snapshot

	shutdownOnce sync.Once
}

func NewFanController(
	sensor sensors.Sensor,
	fan fans.Fan,
	config configuration.Configuration,
) FanController {
	return &fanController{
		sensor: sensor,
		fan:    fan,
		settings: policy.Settings{
			MinTemp:     config.MinTemp,
			MinCoolTemp: config.MinCoolTemp,
			MaxTemp:     config.MaxTemp,
			FanLow:      config.FanLow,
			FanHigh:     config.FanHigh,
		},
		tickRate:  config.WaitInterval,
		avgWindow: config.TempRollingWindowSize,
	}
}

func (f *fanController) Run(ctx context.Context) error {
	fan := f.fan

	if err := fan.Open(); err != nil {
		return err
	}
	defer f.shutdown()

	// start from a known speed, the output may still carry the duty cycle
	// of a previous run
	ui.Info("Setting initial fan speed of %s to %d%%", fan.GetId(), int(f.settings.FanLow))
	if err := fan.SetDutyCycle(f.settings.FanLow); err != nil {
		return fmt.Errorf("fan %s: unable to set initial speed: %w", fan.GetId(), err)
	}

	ui.Info("Starting controller loop for fan '%s'", fan.GetId())

	tick := time.Tick(f.tickRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := f.UpdateFanSpeed(); err != nil {
				// any tick failure stops the loop
				ui.Error("Error in FanController for fan %s: %v", fan.GetId(), err)
				return err
			}
		}
	}
}

func (f *fanController) UpdateFanSpeed() error {
	temperature, err := f.sensor.GetValue()
	if err != nil {
		return fmt.Errorf("temperature read failed: %w", err)
	}

	duty, activated := policy.Evaluate(temperature, f.activated, f.settings)

	if err := f.fan.SetDutyCycle(duty); err != nil {
		return fmt.Errorf("fan speed write failed: %w", err)
	}

	if activated != f.activated {
		if activated {
			ui.Info("Fan %s engaged at %.1f°C", f.fan.GetId(), temperature)
		} else {
			ui.Info("Fan %s disengaged at %.1f°C", f.fan.GetId(), temperature)
		}
	}
	f.activated = activated

	f.sensor.SetMovingAvg(
		util.UpdateSimpleMovingAvg(f.sensor.GetMovingAvg(), f.avgWindow, temperature))

	f.mu.Lock()
	f.snapshot = Snapshot{
		Temperature: temperature,
		DutyCycle:   duty,
		Activated:   activated,
		Ticks:       f.snapshot.Ticks + 1,
		LastUpdate:  time.Now(),
	}
	f.mu.Unlock()

	ui.Debug("Fan speed: %d%%, Temperature: %.1f°C", int(duty), temperature)
	return nil
}

func (f *fanController) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// shutdown leaves the fan at a safe non-zero speed and releases the output.
// Runs at most once, its own failures are only logged so they never mask
// the error that caused the exit.
func (f *fanController) shutdown() {
	f.shutdownOnce.Do(func() {
		ui.Info("Shutting down, setting fan %s to %d%%", f.fan.GetId(), int(f.settings.FanLow))

		if err := f.fan.SetDutyCycle(f.settings.FanLow); err != nil {
			ui.Warning("Unable to set safe fan speed on shutdown: %v", err)
		}
		if err := f.fan.Close(); err != nil {
			ui.Warning("Unable to release fan output on shutdown: %v", err)
		}

		ui.Info("Fan controller shutdown complete.")
	})
}
