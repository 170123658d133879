package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/config"
)

var rootCmd = &cobra.Command{
	Use:   "lodestone",
	Short: "A command line launcher and instance manager for modded Minecraft",
	Long: `A command line launcher and instance manager for modded Minecraft.
Lodestone syncs game files, libraries and mods from a server distribution
manifest, manages optional and locally installed mods, and launches the game.`,
}

// Execute starts the command parsing process.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add registers a subcommand on the root command. Command groups call this
// from their package init.
func Add(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().String("instance-dir", config.DefaultInstanceDir(), "The instance directory to operate on")
	_ = viper.BindPFlag("instance-dir", rootCmd.PersistentFlags().Lookup("instance-dir"))
	rootCmd.PersistentFlags().String("distribution-url", "", "The distribution manifest URL (overrides the stored setting)")
	_ = viper.BindPFlag("distribution-url", rootCmd.PersistentFlags().Lookup("distribution-url"))
	rootCmd.PersistentFlags().BoolP("non-interactive", "y", false, "Use default values for prompts; fail if a default is not available")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))
	rootCmd.PersistentFlags().String("verbosity", "", "Log verbosity (trace, debug, info, warn, error)")
	_ = viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().String("gh-api-key", "", "GitHub API key, increases the rate limit for GitHub mod updates")
	_ = viper.BindPFlag("gh-api-key", rootCmd.PersistentFlags().Lookup("gh-api-key"))

	viper.SetEnvPrefix("LODESTONE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// initSettings layers the instance settings file underneath flag and
// environment values. A missing file is fine; any instance that has not
// been initialised yet simply runs on defaults.
func initSettings() {
	settingsPath := config.NewLayout(viper.GetString("instance-dir")).SettingsPath()
	viper.SetConfigFile(settingsPath)
	viper.SetConfigType("toml")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok && !os.IsNotExist(err) {
			fmt.Printf("Warning: failed to read settings file %s: %s\n", settingsPath, err)
		}
	}
	config.SetGitHubApiKey(viper.GetString("gh-api-key"))
}
