package configuration

type FanConfig struct {
	ID string `json:"id"`

	Rpio *RpioFanConfig `json:"rpio,omitempty"`
	Gpio *GpioFanConfig `json:"gpio,omitempty"`
	File *FileFanConfig `json:"file,omitempty"`
}

// RpioFanConfig drives the fan with the hardware PWM of a
// Raspberry Pi GPIO pin (via /dev/gpiomem).
type RpioFanConfig struct {
	Pin          int `json:"pin"`
	PwmFrequency int `json:"pwmFrequency"`
}

// GpioFanConfig drives the fan with a software PWM signal on a line of a
// GPIO character device. Software toggling caps out well below hardware
// PWM, frequencies above ~1kHz will not be reached.
type GpioFanConfig struct {
	Chip         string `json:"chip"`
	Pin          int    `json:"pin"`
	PwmFrequency int    `json:"pwmFrequency"`
}

// FileFanConfig writes the duty cycle percentage to a file, mainly useful
// for development and testing without fan hardware.
type FileFanConfig struct {
	Path string `json:"path"`
}
