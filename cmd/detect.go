package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"golang.org/x/exp/slices"

	"pifand/cmd/global"
	"pifand/internal/sensors"
	"pifand/internal/ui"
	"pifand/internal/util"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all thermal zones on this system and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		zones, err := sensors.FindThermalZones()
		if err != nil {
			ui.Fatal("Error detecting devices: %s", err.Error())
		}
		if len(zones) <= 0 {
			ui.Printfln("No thermal zones found.")
			return
		}

		slices.SortFunc(zones, func(a, b sensors.ThermalZone) int {
			return a.Index - b.Index
		})

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		var rows [][]string
		for _, zone := range zones {
			tempText := "N/A"
			tempPath := filepath.Join("/sys/class/thermal", fmt.Sprintf("thermal_zone%d", zone.Index), "temp")
			milliCelsius, err := util.ReadIntFromFile(tempPath)
			if err == nil {
				tempText = fmt.Sprintf("%.1f °C", float64(milliCelsius)/1000.0)
			}

			rows = append(rows, []string{
				strconv.Itoa(zone.Index), zone.Type, tempText,
			})
		}

		zoneTable := table.Table{
			Headers: []string{"Index", "Type", "Temp"},
			Rows:    rows,
		}

		var buf bytes.Buffer
		if err := zoneTable.WriteTable(&buf, tableConfig); err != nil {
			ui.Fatal("Error printing thermal zones: %v", err)
		}
		ui.Printfln("> thermal zones")
		ui.Printfln(buf.String())
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
