package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		MinTemp:               55,
		MinCoolTemp:           50,
		MaxTemp:               75,
		FanLow:                50,
		FanHigh:               100,
		WaitInterval:          10 * time.Second,
		TempRollingWindowSize: 10,
		Sensor: SensorConfig{
			ID:          "cpu",
			ThermalZone: &ThermalZoneSensorConfig{Index: 0},
		},
		Fan: FanConfig{
			ID:   "fan",
			Rpio: &RpioFanConfig{Pin: 14, PwmFrequency: 10000},
		},
	}
}

func TestValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestEqualMinAndMaxTempIsRejected(t *testing.T) {
	// GIVEN a config that would divide by zero in the ramp region
	config := validConfig()
	config.MinTemp = 75
	config.MaxTemp = 75

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestMinCoolTempAboveMinTempIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.MinCoolTemp = 60

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestFanLowAboveFanHighIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.FanLow = 80
	config.FanHigh = 60

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestDutyCycleBoundsAreRejectedOutsidePercentRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.FanHigh = 150

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestNonPositiveWaitIntervalIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.WaitInterval = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestMissingSensorSubConfigIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensor.ThermalZone = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestMultipleFanSubConfigsAreRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.File = &FileFanConfig{Path: "/tmp/pwm"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestZeroPwmFrequencyIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Rpio.PwmFrequency = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestInvalidApiPortIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Api.Enabled = true
	config.Api.Port = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}

func TestMqttBrokerWithoutTopicIsRejected(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Mqtt.Broker = "tcp://localhost:1883"
	config.Mqtt.Topic = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.Error(t, err)
}
