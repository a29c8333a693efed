package configuration

type SensorConfig struct {
	ID string `json:"id"`

	ThermalZone *ThermalZoneSensorConfig `json:"thermalZone,omitempty"`
	File        *FileSensorConfig        `json:"file,omitempty"`
}

type ThermalZoneSensorConfig struct {
	// Index of the zone below /sys/class/thermal, zone values are milli-°C
	Index int `json:"index"`
}

type FileSensorConfig struct {
	// Path to a file containing a plain numeric temperature in °C
	Path string `json:"path"`
}
