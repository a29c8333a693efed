package sensor

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"pifand/internal/ui"
	"pifand/internal/util"
)

var (
	watchInterval time.Duration
	watchSamples  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the sensor and print a temperature graph",
	Long:  `Samples the configured sensor periodically and prints the readings as a graph together with min/max/avg`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sensor, err := getSensor()
		if err != nil {
			return err
		}

		window := util.CreateRollingWindow(watchSamples)
		values := make([]float64, 0, watchSamples)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		tick := time.Tick(watchInterval)
		for len(values) < watchSamples {
			select {
			case <-sig:
				ui.Printfln("")
				printSummary(window, values)
				return nil
			case <-tick:
				value, err := sensor.GetValue()
				if err != nil {
					return fmt.Errorf("error reading sensor %s: %w", sensor.GetId(), err)
				}
				window.Append(value)
				values = append(values, value)
				ui.Printf("\r%d/%d samples, current: %.1f °C", len(values), watchSamples, value)
			}
		}
		ui.Printfln("")

		printSummary(window, values)
		return nil
	},
}

func printSummary(window *rolling.PointPolicy, values []float64) {
	if len(values) <= 0 {
		ui.Printfln("No samples recorded.")
		return
	}

	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Temperature (°C)"))
	ui.Printfln(graph)
	ui.Printfln("min: %.1f °C  max: %.1f °C  avg: %.1f °C",
		window.Reduce(rolling.Min),
		window.Reduce(rolling.Max),
		window.Reduce(rolling.Avg),
	)
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "n", 1*time.Second, "Time between samples")
	watchCmd.Flags().IntVarP(&watchSamples, "samples", "s", 60, "Number of samples to record")

	Command.AddCommand(watchCmd)
}
