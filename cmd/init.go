package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a lodestone instance",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		if err := checkReinit(layout.SettingsPath()); err != nil {
			shared.Exitln(err)
		}

		name := getInstanceName(cmd, layout)
		distURL := getDistributionURL()

		settings, err := fileio.LoadSettings(layout.SettingsPath())
		if err != nil {
			shared.Exitln(err)
		}
		settings["instance-name"] = name
		settings["distribution-url"] = distURL

		for _, dir := range []string{
			layout.LibrariesDir(),
			layout.AssetIndexesDir(),
			layout.AssetObjectsDir(),
			layout.VersionsDir(),
		} {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				shared.Exitf("Error creating instance directories: %s\n", err)
			}
		}

		if err := ensureAccount(cmd, layout); err != nil {
			shared.Exitln(err)
		}

		if err := fileio.SaveSettings(layout.SettingsPath(), settings); err != nil {
			shared.Exitln(err)
		}

		// The settings file did not exist when viper read its config, so
		// make the chosen URL visible to the fetch below.
		viper.Set("distribution-url", distURL)
		dist, err := shared.LoadDistribution(layout)
		if err != nil {
			fmt.Printf("Warning: could not fetch the distribution manifest: %s\n", err)
		} else {
			fmt.Printf("Distribution lists %d server(s).\n", len(dist.Servers))
		}

		fmt.Println(layout.SettingsPath() + " created!")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "The display name of the instance (omit to define interactively)")
	initCmd.Flags().String("player", "", "The offline player name to create an account for (omit to define interactively)")
	initCmd.Flags().BoolP("reinit", "r", false, "Recreate the settings file if it already exists, rather than exiting")
	_ = viper.BindPFlag("init.reinit", initCmd.Flags().Lookup("reinit"))
}

func checkReinit(settingsPath string) error {
	_, err := os.Stat(settingsPath)
	if err == nil && !viper.GetBool("init.reinit") {
		return errors.New("instance settings file already exists, use -r to override")
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error checking settings file: %s", err)
	}
	return nil
}

func getInstanceName(cmd *cobra.Command, layout config.Layout) string {
	name, err := cmd.Flags().GetString("name")
	if err != nil || len(name) == 0 {
		directoryName := filepath.Base(layout.InstanceDir)
		if directoryName != "." && len(directoryName) > 0 {
			// Turn directory name into a space-seperated proper name
			name = titlecase.Title(strings.ReplaceAll(strings.ReplaceAll(strings.Join(camelcase.Split(directoryName), " "), " - ", " "), " _ ", " "))
			name = shared.ReadValue("Instance name ["+name+"]: ", name)
		} else {
			name = shared.ReadValue("Instance name: ", "")
		}
	}

	return name
}

func getDistributionURL() string {
	distURL := viper.GetString("distribution-url")
	if len(distURL) == 0 {
		distURL = shared.ReadValue("Distribution manifest URL: ", "")
	}
	if len(distURL) == 0 {
		shared.Exitln("A distribution manifest URL is required.")
	}
	return distURL
}

func ensureAccount(cmd *cobra.Command, layout config.Layout) error {
	store, err := accounts.Load(layout.AccountsPath())
	if err != nil {
		return err
	}
	if len(store.Accounts) > 0 {
		return nil
	}

	player, err := cmd.Flags().GetString("player")
	if err != nil || len(player) == 0 {
		player = shared.ReadValue("Player name [Player]: ", "Player")
	}
	account := accounts.NewOfflineAccount(player)
	store.Add(account)
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("Created offline account %s (%s)\n", account.DisplayName, account.UUID)
	return nil
}
