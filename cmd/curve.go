package cmd

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"pifand/cmd/global"
	"pifand/internal/configuration"
	"pifand/internal/policy"
	"pifand/internal/ui"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured fan curve to console",
	Long:  `Prints the thresholds of the configured curve and a plot of the resulting fan speeds across the temperature range`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.FatalWithoutStacktrace("Config validation failed: %v", err)
		}

		config := configuration.CurrentConfig
		settings := policy.Settings{
			MinTemp:     config.MinTemp,
			MinCoolTemp: config.MinCoolTemp,
			MaxTemp:     config.MaxTemp,
			FanLow:      config.FanLow,
			FanHigh:     config.FanHigh,
		}

		// print table
		tab := table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"Min Temp", fmt.Sprintf("%.1f °C", settings.MinTemp)},
				{"Min Cool Temp", fmt.Sprintf("%.1f °C", settings.MinCoolTemp)},
				{"Max Temp", fmt.Sprintf("%.1f °C", settings.MaxTemp)},
				{"Fan Low", fmt.Sprintf("%.0f %%", settings.FanLow)},
				{"Fan High", fmt.Sprintf("%.0f %%", settings.FanHigh)},
			},
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		// print graph
		from := settings.MinCoolTemp - 10
		to := settings.MaxTemp + 10
		values := policy.Sweep(settings, from, to, 0.5)

		caption := fmt.Sprintf("Fan speed (%%) for %.0f °C to %.0f °C", from, to)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
