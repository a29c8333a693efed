package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pifand/internal/api"
	"pifand/internal/configuration"
	"pifand/internal/controller"
	"pifand/internal/fans"
	"pifand/internal/mqtt"
	"pifand/internal/sensors"
	"pifand/internal/statistics"
	"pifand/internal/ui"
)

func RunDaemon() {
	if configuration.CurrentConfig.Fan.File == nil && getProcessOwner() != "root" {
		ui.Fatal("Driving a GPIO fan output requires root permissions, please run pifand as root")
	}

	sensor, fan, fanController := InitializeObjects()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				mux := http.NewServeMux()
				mux.Handle("/metrics", handler)
				server := &http.Server{Addr: addr, Handler: mux}

				go func() {
					<-ctx.Done()
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = server.Shutdown(timeoutCtx)
				}()

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST API
			echoRest := api.CreateRestService(fanController)

			g.Add(func() error {
				apiConfig := configuration.CurrentConfig.Api
				addr := fmt.Sprintf("%s:%d", apiConfig.Host, apiConfig.Port)

				go func() {
					<-ctx.Done()
					ui.Info("Stopping API server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = echoRest.Shutdown(timeoutCtx)
				}()

				if err := echoRest.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start API server (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping API server: " + err.Error())
				} else {
					ui.Info("API server stopped.")
				}
			})
		}
	}
	{
		broker := configuration.CurrentConfig.Mqtt.Broker
		if len(broker) > 0 {
			// === MQTT status reporting
			topic := configuration.CurrentConfig.Mqtt.Topic
			publisher, err := mqtt.NewPublisher(broker, topic)
			if err != nil {
				ui.Fatal("Unable to connect to MQTT broker %s: %v", broker, err)
			}

			g.Add(func() error {
				err := publisher.Report(ctx, fanController, configuration.CurrentConfig.WaitInterval)
				ui.Info("MQTT reporter stopped.")
				return err
			}, func(err error) {
				_ = publisher.Close()
				if err != nil {
					ui.Warning("Error reporting to MQTT broker: %v", err)
				}
			})
		}
	}
	{
		// === fan controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			ui.Info("Fan controller for fan %s stopped.", fan.GetId())
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong controlling fan %s: %v", fan.GetId(), err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received exit signal, shutting down...")
				return nil
			case <-ctx.Done():
				return nil
			}
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	ui.Info("Controlling fan %s based on sensor %s", fan.GetId(), sensor.GetId())

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds the sensor, fan and controller from the current
// configuration and registers the statistics collectors.
func InitializeObjects() (sensors.Sensor, fans.Fan, controller.FanController) {
	config := configuration.CurrentConfig

	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		ui.Fatal("Unable to process sensor configuration: %s", config.Sensor.ID)
	}
	sensors.SensorMap.Set(sensor.GetId(), sensor)

	currentValue, err := sensor.GetValue()
	if err != nil {
		ui.Warning("Error reading sensor %s: %v", sensor.GetId(), err)
	}
	sensor.SetMovingAvg(currentValue)

	fan, err := fans.NewFan(config.Fan)
	if err != nil {
		ui.Fatal("Unable to process fan configuration: %s", config.Fan.ID)
	}
	fans.FanMap.Set(fan.GetId(), fan)

	fanController := controller.NewFanController(sensor, fan, config)

	statistics.Register(statistics.NewSensorCollector([]sensors.Sensor{sensor}))
	statistics.Register(statistics.NewFanCollector([]fans.Fan{fan}))
	statistics.Register(statistics.NewControllerCollector([]controller.FanController{fanController}))

	return sensor, fan, fanController
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
