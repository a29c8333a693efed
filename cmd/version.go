package cmd

import (
	"github.com/spf13/cobra"

	"pifand/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pifand",
	Long:  `All software has versions. This is pifand's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("1.0.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
