package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pifand/internal/configuration"
	"pifand/internal/util"
)

const thermalBasePath = "/sys/class/thermal"

// ThermalZoneSensor reads a zone of the kernel thermal subsystem,
// e.g. /sys/class/thermal/thermal_zone0/temp on a Raspberry Pi.
type ThermalZoneSensor struct {
	Index     int                        `json:"index"`
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor *ThermalZoneSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *ThermalZoneSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *ThermalZoneSensor) GetValue() (float64, error) {
	inputPath := filepath.Join(thermalBasePath, fmt.Sprintf("thermal_zone%d", sensor.Index), "temp")
	milliDegrees, err := util.ReadIntFromFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read %s: %w", sensor.GetId(), inputPath, err)
	}
	return float64(milliDegrees) / 1000.0, nil
}

func (sensor *ThermalZoneSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *ThermalZoneSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}

// ThermalZone describes one discovered zone of the thermal subsystem.
type ThermalZone struct {
	Index int
	Type  string
}

// FindThermalZones lists the thermal zones available on this system.
func FindThermalZones() ([]ThermalZone, error) {
	entries, err := os.ReadDir(thermalBasePath)
	if err != nil {
		return nil, err
	}

	var zones []ThermalZone
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "thermal_zone") {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(name, "thermal_zone"))
		if err != nil {
			continue
		}

		zoneType := ""
		data, err := os.ReadFile(filepath.Join(thermalBasePath, name, "type"))
		if err == nil {
			zoneType = strings.TrimSpace(string(data))
		}

		zones = append(zones, ThermalZone{
			Index: index,
			Type:  zoneType,
		})
	}

	return zones, nil
}
