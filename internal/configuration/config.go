package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"pifand/internal/ui"
)

type Configuration struct {
	// MinTemp is the temperature (°C) at which the fan engages
	MinTemp float64 `json:"minTemp"`
	// MinCoolTemp is the temperature (°C) below which an engaged fan disengages
	MinCoolTemp float64 `json:"minCoolTemp"`
	// MaxTemp is the temperature (°C) at which the fan runs at full speed
	MaxTemp float64 `json:"maxTemp"`

	// FanLow and FanHigh bound the duty cycle (percent) of the ramp region
	FanLow  float64 `json:"fanLow"`
	FanHigh float64 `json:"fanHigh"`

	// WaitInterval is the time between two temperature samples
	WaitInterval time.Duration `json:"waitInterval"`

	// TempRollingWindowSize is the buffer size of the smoothed display value
	// of the sensor. The control loop itself always uses raw readings.
	TempRollingWindowSize int `json:"tempRollingWindowSize"`

	Sensor SensorConfig `json:"sensor"`
	Fan    FanConfig    `json:"fan"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pifand")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pifand/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("MinTemp", 55.0)
	viper.SetDefault("MinCoolTemp", 50.0)
	viper.SetDefault("MaxTemp", 75.0)
	viper.SetDefault("FanLow", 50.0)
	viper.SetDefault("FanHigh", 100.0)
	viper.SetDefault("WaitInterval", 10*time.Second)
	viper.SetDefault("TempRollingWindowSize", 10)

	viper.SetDefault("sensor.id", "cpu")
	viper.SetDefault("fan.id", "fan")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("mqtt.topic", "pifand/status")
}

// DetectConfigFile returns the path of the config file viper has settled on,
// or an empty string when running on defaults only.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			// the config file is optional, all values have defaults
			return ""
		}
		ui.Fatal("Error reading config file: %v", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}

	applySubConfigDefaults(&CurrentConfig)
}

// applySubConfigDefaults fills in the default sensor and fan backends:
// CPU thermal zone 0, hardware PWM on GPIO 14 at 10kHz. Defaults cannot be
// declared via viper here because they would merge into explicitly
// configured sensor/fan blocks of a different type.
func applySubConfigDefaults(config *Configuration) {
	sensor := &config.Sensor
	if sensor.ThermalZone == nil && sensor.File == nil {
		sensor.ThermalZone = &ThermalZoneSensorConfig{Index: 0}
	}

	fan := &config.Fan
	if fan.Rpio == nil && fan.Gpio == nil && fan.File == nil {
		fan.Rpio = &RpioFanConfig{Pin: 14}
	}
	if fan.Rpio != nil && fan.Rpio.PwmFrequency <= 0 {
		fan.Rpio.PwmFrequency = 10000
	}
	if fan.Gpio != nil {
		if fan.Gpio.Chip == "" {
			fan.Gpio.Chip = "gpiochip0"
		}
		if fan.Gpio.PwmFrequency <= 0 {
			fan.Gpio.PwmFrequency = 25
		}
	}
}
