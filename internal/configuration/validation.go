package configuration

import (
	"errors"
	"fmt"
)

// Validate checks the loaded configuration once at startup. The control
// loop relies on every invariant verified here, most importantly
// minCoolTemp < minTemp < maxTemp, which keeps the ramp divisor non-zero.
func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateThresholds(config)
	if err != nil {
		return err
	}
	err = validateSensor(config)
	if err != nil {
		return err
	}
	err = validateFan(config)
	if err != nil {
		return err
	}
	return validateServers(config)
}

func validateThresholds(config *Configuration) error {
	if config.MinTemp >= config.MaxTemp {
		return errors.New(fmt.Sprintf("minTemp (%.1f) must be below maxTemp (%.1f)", config.MinTemp, config.MaxTemp))
	}
	if config.MinCoolTemp >= config.MinTemp {
		return errors.New(fmt.Sprintf("minCoolTemp (%.1f) must be below minTemp (%.1f)", config.MinCoolTemp, config.MinTemp))
	}

	if config.FanLow < 0 || config.FanLow > 100 {
		return errors.New(fmt.Sprintf("fanLow (%.1f) must be within [0..100]", config.FanLow))
	}
	if config.FanHigh < 0 || config.FanHigh > 100 {
		return errors.New(fmt.Sprintf("fanHigh (%.1f) must be within [0..100]", config.FanHigh))
	}
	if config.FanLow > config.FanHigh {
		return errors.New(fmt.Sprintf("fanLow (%.1f) must not exceed fanHigh (%.1f)", config.FanLow, config.FanHigh))
	}

	if config.WaitInterval <= 0 {
		return errors.New(fmt.Sprintf("waitInterval (%v) must be positive", config.WaitInterval))
	}
	if config.TempRollingWindowSize <= 0 {
		return errors.New(fmt.Sprintf("tempRollingWindowSize (%d) must be positive", config.TempRollingWindowSize))
	}

	return nil
}

func validateSensor(config *Configuration) error {
	sensorConfig := config.Sensor

	subConfigs := 0
	if sensorConfig.ThermalZone != nil {
		subConfigs++
	}
	if sensorConfig.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return errors.New(fmt.Sprintf("Sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID))
	}
	if subConfigs <= 0 {
		return errors.New(fmt.Sprintf("Sensor %s: sub-configuration for sensor is missing, use one of: thermalZone | file", sensorConfig.ID))
	}

	if sensorConfig.ThermalZone != nil {
		if sensorConfig.ThermalZone.Index < 0 {
			return errors.New(fmt.Sprintf("Sensor %s: invalid thermal zone index, must be >= 0", sensorConfig.ID))
		}
	}

	if sensorConfig.File != nil {
		if len(sensorConfig.File.Path) <= 0 {
			return errors.New(fmt.Sprintf("Sensor %s: no file path provided", sensorConfig.ID))
		}
	}

	return nil
}

func validateFan(config *Configuration) error {
	fanConfig := config.Fan

	subConfigs := 0
	if fanConfig.Rpio != nil {
		subConfigs++
	}
	if fanConfig.Gpio != nil {
		subConfigs++
	}
	if fanConfig.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return errors.New(fmt.Sprintf("Fan %s: only one fan type can be used per fan definition block", fanConfig.ID))
	}
	if subConfigs <= 0 {
		return errors.New(fmt.Sprintf("Fan %s: sub-configuration for fan is missing, use one of: rpio | gpio | file", fanConfig.ID))
	}

	if fanConfig.Rpio != nil {
		if fanConfig.Rpio.Pin < 0 {
			return errors.New(fmt.Sprintf("Fan %s: invalid GPIO pin number", fanConfig.ID))
		}
		if fanConfig.Rpio.PwmFrequency <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: pwmFrequency must be positive", fanConfig.ID))
		}
	}

	if fanConfig.Gpio != nil {
		if len(fanConfig.Gpio.Chip) <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: missing gpio chip name", fanConfig.ID))
		}
		if fanConfig.Gpio.Pin < 0 {
			return errors.New(fmt.Sprintf("Fan %s: invalid GPIO pin number", fanConfig.ID))
		}
		if fanConfig.Gpio.PwmFrequency <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: pwmFrequency must be positive", fanConfig.ID))
		}
	}

	if fanConfig.File != nil {
		if len(fanConfig.File.Path) <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: no file path provided", fanConfig.ID))
		}
	}

	return nil
}

func validateServers(config *Configuration) error {
	if config.Api.Enabled {
		if config.Api.Port <= 0 || config.Api.Port >= 65535 {
			return errors.New(fmt.Sprintf("Invalid api port: %d", config.Api.Port))
		}
	}
	if config.Statistics.Enabled {
		if config.Statistics.Port <= 0 || config.Statistics.Port >= 65535 {
			return errors.New(fmt.Sprintf("Invalid statistics port: %d", config.Statistics.Port))
		}
	}
	if len(config.Mqtt.Broker) > 0 {
		if len(config.Mqtt.Topic) <= 0 {
			return errors.New("Mqtt: topic must not be empty")
		}
	}
	return nil
}
