package fans

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"pifand/internal/configuration"
	"pifand/internal/util"
)

// GpioFan drives a fan with a software PWM signal on a line of a GPIO
// character device. The toggle loop runs in its own goroutine and shares
// the duty cycle with SetDutyCycle through an atomic value.
type GpioFan struct {
	ChipName     string                  `json:"chip"`
	Pin          int                     `json:"pin"`
	PwmFrequency int                     `json:"pwmFrequency"`
	Config       configuration.FanConfig `json:"configuration"`

	chip *gpiocdev.Chip
	line *gpiocdev.Line

	// duty cycle in basis points (percent * 100)
	duty atomic.Int64

	stop chan struct{}
	done chan struct{}
}

func (fan *GpioFan) GetId() string {
	return fan.Config.ID
}

func (fan *GpioFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *GpioFan) Open() error {
	chip, err := gpiocdev.NewChip(fan.ChipName, gpiocdev.WithConsumer("pifand"))
	if err != nil {
		return fmt.Errorf("fan %s: open gpio chip %s: %w", fan.GetId(), fan.ChipName, err)
	}

	line, err := chip.RequestLine(fan.Pin, gpiocdev.AsOutput(0))
	if err != nil {
		_ = chip.Close()
		return fmt.Errorf("fan %s: request line %d: %w", fan.GetId(), fan.Pin, err)
	}

	fan.chip = chip
	fan.line = line
	fan.stop = make(chan struct{})
	fan.done = make(chan struct{})
	go fan.pwmLoop()
	return nil
}

func (fan *GpioFan) SetDutyCycle(percent float64) error {
	if fan.line == nil {
		return fmt.Errorf("fan %s: output not open", fan.GetId())
	}

	percent = util.Coerce(percent, MinDutyCycle, MaxDutyCycle)
	fan.duty.Store(int64(math.Round(percent * 100)))
	return nil
}

func (fan *GpioFan) GetDutyCycle() float64 {
	return float64(fan.duty.Load()) / 100.0
}

func (fan *GpioFan) Close() error {
	if fan.line == nil {
		return nil
	}

	close(fan.stop)
	<-fan.done

	// software PWM dies with the toggle loop, so leave the line driven
	// high when the fan was running
	level := 0
	if fan.duty.Load() > 0 {
		level = 1
	}
	err := fan.line.SetValue(level)

	if closeErr := fan.line.Close(); err == nil {
		err = closeErr
	}
	if closeErr := fan.chip.Close(); err == nil {
		err = closeErr
	}
	fan.line = nil
	fan.chip = nil
	return err
}

func (fan *GpioFan) pwmLoop() {
	defer close(fan.done)

	period := time.Second / time.Duration(fan.PwmFrequency)
	for {
		select {
		case <-fan.stop:
			return
		default:
		}

		percent := float64(fan.duty.Load()) / 100.0
		onTime, offTime := pwmTimes(period, percent)

		if onTime > 0 {
			_ = fan.line.SetValue(1)
			time.Sleep(onTime)
		}
		if offTime > 0 {
			_ = fan.line.SetValue(0)
			time.Sleep(offTime)
		}
	}
}

// pwmTimes splits one PWM period into high and low time for the given
// duty cycle percentage.
func pwmTimes(period time.Duration, percent float64) (onTime time.Duration, offTime time.Duration) {
	onTime = time.Duration(float64(period) * percent / 100.0)
	offTime = period - onTime
	return onTime, offTime
}
