package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// MqttConfig enables publishing of controller status messages to an MQTT
// broker. Disabled while Broker is empty.
type MqttConfig struct {
	Broker string `json:"broker"`
	Topic  string `json:"topic"`
}
