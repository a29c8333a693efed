package sensors

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"

	"pifand/internal/configuration"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature reading of this sensor in °C
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this sensor's value.
	// Only used for display and reporting, the control loop acts on
	// raw readings.
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.ThermalZone != nil {
		return &ThermalZoneSensor{
			Index:  config.ThermalZone.Index,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
