package fans

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"

	"pifand/internal/configuration"
)

const (
	// MaxDutyCycle is the duty cycle of a fan at full speed, in percent
	MaxDutyCycle = 100.0
	// MinDutyCycle is the duty cycle of a stopped fan, in percent
	MinDutyCycle = 0.0
)

var (
	FanMap = cmap.New[Fan]()
)

type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// Open acquires the underlying PWM output. Must be called exactly once
	// before the first SetDutyCycle.
	Open() error

	// SetDutyCycle commands the fan speed as a percentage in [0..100]
	SetDutyCycle(percent float64) error

	// GetDutyCycle returns the last commanded duty cycle
	GetDutyCycle() float64

	// Close releases the output, keeping the fan spinning at the last
	// commanded duty cycle where the hardware allows it. A closed fan
	// ignores further Close calls.
	Close() error
}

func NewFan(config configuration.FanConfig) (Fan, error) {
	if config.Rpio != nil {
		return &RpioFan{
			Pin:          config.Rpio.Pin,
			PwmFrequency: config.Rpio.PwmFrequency,
			Config:       config,
		}, nil
	}

	if config.Gpio != nil {
		return &GpioFan{
			ChipName:     config.Gpio.Chip,
			Pin:          config.Gpio.Pin,
			PwmFrequency: config.Gpio.PwmFrequency,
			Config:       config,
		}, nil
	}

	if config.File != nil {
		return &FileFan{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}
