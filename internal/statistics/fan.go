package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pifand/internal/fans"
)

const subsystemFan = "fan"

type FanCollector struct {
	fans []fans.Fan
	duty *prometheus.Desc
}

func NewFanCollector(fans []fans.Fan) *FanCollector {
	return &FanCollector{
		fans: fans,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFan, "duty_cycle_percent"),
			"Last duty cycle commanded on the fan",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.fans {
		fanId := fan.GetId()
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, fan.GetDutyCycle(), fanId)
	}
}
