package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pifand/internal/sensors"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	sensors []sensors.Sensor
	value   *prometheus.Desc
}

func NewSensorCollector(sensors []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: sensors,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature_celsius"),
			"Current temperature reading of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		sensorId := sensor.GetId()
		value, err := sensor.GetValue()
		if err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sensorId)
	}
}
