package sensors

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"pifand/internal/configuration"
	"pifand/internal/util"
)

// FileSensor reads a plain numeric temperature (°C) from an arbitrary file.
type FileSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue() (float64, error) {
	filePath := sensor.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read %s: %w", sensor.GetId(), filePath, err)
	}
	return value, nil
}

func (sensor *FileSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *FileSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
