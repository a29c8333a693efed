package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"pifand/internal/configuration"
)

func TestNewSensorFile(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "cpu",
		File: &configuration.FileSensorConfig{Path: "/tmp/temp"},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileSensor{}, sensor)
	assert.Equal(t, "cpu", sensor.GetId())
}

func TestNewSensorThermalZone(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:          "cpu",
		ThermalZone: &configuration.ThermalZoneSensorConfig{Index: 0},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &ThermalZoneSensor{}, sensor)
}

func TestNewSensorWithoutSubConfig(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{ID: "cpu"}

	// WHEN
	_, err := NewSensor(config)

	// THEN
	assert.Error(t, err)
}

func TestFileSensorReadsDegrees(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(path, []byte("48.5\n"), 0644)
	assert.NoError(t, err)

	sensor := &FileSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			File: &configuration.FileSensorConfig{Path: path},
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 48.5, value)
}

func TestFileSensorMissingFile(t *testing.T) {
	// GIVEN
	sensor := &FileSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			File: &configuration.FileSensorConfig{Path: filepath.Join(t.TempDir(), "missing")},
		},
	}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestMovingAvg(t *testing.T) {
	// GIVEN
	sensor := &FileSensor{}

	// WHEN
	sensor.SetMovingAvg(52.5)

	// THEN
	assert.Equal(t, 52.5, sensor.GetMovingAvg())
}
