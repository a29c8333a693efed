package fans

import (
	"fmt"
	"math"

	"github.com/stianeikeland/go-rpio"

	"pifand/internal/configuration"
	"pifand/internal/util"
)

// pwmCycleLength is the resolution of one PWM period, one step per percent
const pwmCycleLength = 100

// RpioFan drives a fan with the hardware PWM of a Raspberry Pi GPIO pin.
type RpioFan struct {
	Pin          int                     `json:"pin"`
	PwmFrequency int                     `json:"pwmFrequency"`
	Config       configuration.FanConfig `json:"configuration"`
	DutyCycle    float64                 `json:"dutyCycle"`

	pin    rpio.Pin
	opened bool
}

func (fan *RpioFan) GetId() string {
	return fan.Config.ID
}

func (fan *RpioFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *RpioFan) Open() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("fan %s: unable to open gpio memory range: %w", fan.GetId(), err)
	}

	fan.pin = rpio.Pin(fan.Pin)
	fan.pin.Mode(rpio.Pwm)
	// the pwm clock runs one tick per cycle step
	fan.pin.Freq(fan.PwmFrequency * pwmCycleLength)
	fan.opened = true
	return nil
}

func (fan *RpioFan) SetDutyCycle(percent float64) error {
	if !fan.opened {
		return fmt.Errorf("fan %s: output not open", fan.GetId())
	}

	percent = util.Coerce(percent, MinDutyCycle, MaxDutyCycle)
	fan.pin.DutyCycle(uint32(math.Round(percent)), pwmCycleLength)
	fan.DutyCycle = percent
	return nil
}

func (fan *RpioFan) GetDutyCycle() float64 {
	return fan.DutyCycle
}

func (fan *RpioFan) Close() error {
	if !fan.opened {
		return nil
	}
	fan.opened = false

	// the hardware PWM block keeps running at the last duty cycle after the
	// memory range is unmapped, so a fan left at a safe speed stays there
	return rpio.Close()
}
