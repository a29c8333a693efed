package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pifand/internal/controller"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controllers []controller.FanController

	activated   *prometheus.Desc
	temperature *prometheus.Desc
	dutyCycle   *prometheus.Desc
	tickCount   *prometheus.Desc
}

func NewControllerCollector(controllers []controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controllers: controllers,
		activated: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "activated"),
			"Whether the hysteresis latch of the controller is currently engaged",
			nil, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_celsius"),
			"Temperature reading of the last controller tick",
			nil, nil,
		),
		dutyCycle: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "duty_cycle_percent"),
			"Duty cycle applied on the last controller tick",
			nil, nil,
		),
		tickCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "tick_count"),
			"Counter of completed controller ticks",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.activated
	ch <- collector.temperature
	ch <- collector.dutyCycle
	ch <- collector.tickCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, contr := range collector.controllers {
		snapshot := contr.Snapshot()

		activated := 0.0
		if snapshot.Activated {
			activated = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.activated, prometheus.GaugeValue, activated)
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, snapshot.Temperature)
		ch <- prometheus.MustNewConstMetric(collector.dutyCycle, prometheus.GaugeValue, snapshot.DutyCycle)
		ch <- prometheus.MustNewConstMetric(collector.tickCount, prometheus.CounterValue, float64(snapshot.Ticks))
	}
}
