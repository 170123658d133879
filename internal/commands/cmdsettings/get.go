package cmdsettings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting's effective value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		if !viper.IsSet(key) {
			shared.Exitf("Setting %q is not set\n", key)
		}
		fmt.Println(viper.GetString(key))
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the settings stored in the instance settings file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := fileio.LoadSettings(shared.GetLayout().SettingsPath())
		if err != nil {
			shared.Exitln(err)
		}
		if len(settings) == 0 {
			fmt.Println("No settings stored; run 'lodestone init' or 'lodestone settings set'.")
			return
		}

		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s = %v\n", key, settings[key])
		}
	},
}

func init() {
	settingsCmd.AddCommand(getCmd)
	settingsCmd.AddCommand(listCmd)
}
