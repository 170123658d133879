package cmdsettings

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting in the instance settings file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		if !slices.Contains(settingsKeys, key) {
			shared.Exitf("Unknown setting %q; valid keys: %s\n", key, strings.Join(settingsKeys, ", "))
		}
		if key == "max-ram" || key == "min-ram" {
			if _, err := config.ParseMemorySize(args[1]); err != nil {
				shared.Exitf("Invalid %s: %s\n", key, err)
			}
		}

		settingsPath := shared.GetLayout().SettingsPath()
		settings, err := fileio.LoadSettings(settingsPath)
		if err != nil {
			shared.Exitln(err)
		}
		settings[key] = args[1]
		if err := fileio.SaveSettings(settingsPath, settings); err != nil {
			shared.Exitln(err)
		}

		fmt.Printf("%s = %s\n", key, args[1])
	},
}

// unsetCmd represents the unset command
var unsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a setting from the instance settings file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])

		settingsPath := shared.GetLayout().SettingsPath()
		settings, err := fileio.LoadSettings(settingsPath)
		if err != nil {
			shared.Exitln(err)
		}
		if _, ok := settings[key]; !ok {
			shared.Exitf("Setting %q is not stored\n", key)
		}
		delete(settings, key)
		if err := fileio.SaveSettings(settingsPath, settings); err != nil {
			shared.Exitln(err)
		}

		fmt.Printf("%s removed\n", key)
	},
}

func init() {
	settingsCmd.AddCommand(setCmd)
	settingsCmd.AddCommand(unsetCmd)
}
