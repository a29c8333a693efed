package sensor

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pifand/internal/configuration"
	"pifand/internal/sensors"
	"pifand/internal/ui"
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Sensor related commands",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor()
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%d", int(value))
		return nil
	},
}

func getSensor() (sensors.Sensor, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return sensors.NewSensor(configuration.CurrentConfig.Sensor)
}
