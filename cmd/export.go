package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the instance as a zip archive",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		target, _ := cmd.Flags().GetString("output")
		if target == "" {
			name := viper.GetString("instance-name")
			if name == "" {
				name = "lodestone-instance"
			}
			target = strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".zip"
		}

		fmt.Println("Exporting instance...")
		if err := fileio.ExportInstance(layout.InstanceDir, target); err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("Instance exported to %s\n", target)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "The file to export to (default: derived from the instance name)")
}
