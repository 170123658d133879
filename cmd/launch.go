package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
	"github.com/lodestone-launcher/lodestone/launch"
)

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:     "launch [server]",
	Short:   "Sync a server's files and launch the game",
	Aliases: []string{"play", "start"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		logger := shared.NewLogger()

		store, err := accounts.Load(layout.AccountsPath())
		if err != nil {
			shared.Exitln(err)
		}
		account, err := store.SelectedAccount()
		if err != nil {
			shared.Exitln(err)
		}

		dist, err := shared.LoadDistribution(layout)
		if err != nil {
			shared.Exitln(err)
		}

		var ref string
		if len(args) > 0 {
			ref = args[0]
		}
		server, err := shared.PickServer(&dist, ref)
		if err != nil {
			shared.Exitln(err)
		}

		if !viper.GetBool("launch.no-sync") {
			if err := syncServer(cmd.Context(), layout, server); err != nil {
				shared.Exitln(err)
			}
		}

		manifest, err := fileio.FetchVersionManifest(layout.VersionManifestPath(server.MinecraftVersion), server.MinecraftVersion)
		if err != nil {
			shared.Exitln(err)
		}
		modConfig, err := fileio.LoadModConfig(layout.ModConfigPath(server.ID))
		if err != nil {
			shared.Exitln(err)
		}
		localMods, err := fileio.LoadAllLocalMods(layout.ModsDir(server.ID))
		if err != nil {
			shared.Exitln(err)
		}

		opts, err := launchOptions()
		if err != nil {
			shared.Exitln(err)
		}

		session := account.Session()
		spec := &launch.Spec{
			Layout:    layout,
			Server:    server,
			Manifest:  manifest,
			Session:   &session,
			ModConfig: modConfig,
			LocalMods: localMods,
			Options:   opts,
			Logger:    logger,
		}

		proc, err := launch.Launch(cmd.Context(), spec)
		if err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("Started %s as %s (pid %d)\n", server.Name, session.DisplayName, proc.PID())

		if proc.Detached() {
			return
		}
		if err := proc.Wait(); err != nil {
			shared.Exitln(err)
		}
	},
}

var maxHeapFlag = config.DefaultMaxHeap
var minHeapFlag = config.DefaultMinHeap

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().String("java-path", "", "Path to the java executable (default: JAVA_HOME, then PATH)")
	_ = viper.BindPFlag("java-path", launchCmd.Flags().Lookup("java-path"))
	launchCmd.Flags().Var(&maxHeapFlag, "max-ram", "Maximum JVM heap size, e.g. 4096M or 4G")
	_ = viper.BindPFlag("max-ram", launchCmd.Flags().Lookup("max-ram"))
	launchCmd.Flags().Var(&minHeapFlag, "min-ram", "Minimum JVM heap size, e.g. 2048M or 2G")
	_ = viper.BindPFlag("min-ram", launchCmd.Flags().Lookup("min-ram"))
	launchCmd.Flags().String("jvm-args", "", "Extra JVM arguments, space separated")
	_ = viper.BindPFlag("jvm-args", launchCmd.Flags().Lookup("jvm-args"))
	launchCmd.Flags().Int("width", 0, "Game window width")
	_ = viper.BindPFlag("width", launchCmd.Flags().Lookup("width"))
	launchCmd.Flags().Int("height", 0, "Game window height")
	_ = viper.BindPFlag("height", launchCmd.Flags().Lookup("height"))
	launchCmd.Flags().Bool("fullscreen", false, "Launch the game in fullscreen")
	_ = viper.BindPFlag("fullscreen", launchCmd.Flags().Lookup("fullscreen"))
	launchCmd.Flags().Bool("detached", false, "Leave the game running after lodestone exits")
	_ = viper.BindPFlag("detached", launchCmd.Flags().Lookup("detached"))
	launchCmd.Flags().Bool("auto-connect", true, "Connect to the server on startup when the server allows it")
	_ = viper.BindPFlag("auto-connect", launchCmd.Flags().Lookup("auto-connect"))
	launchCmd.Flags().String("join-url", "", "Join authorization service URL (omit if the distribution runs none)")
	_ = viper.BindPFlag("join-url", launchCmd.Flags().Lookup("join-url"))
	launchCmd.Flags().Bool("no-sync", false, "Launch with the files already on disk, without syncing first")
	_ = viper.BindPFlag("launch.no-sync", launchCmd.Flags().Lookup("no-sync"))
}

// launchOptions assembles launch options from flags, environment and the
// instance settings file.
func launchOptions() (launch.Options, error) {
	maxHeap, err := config.ParseMemorySize(viper.GetString("max-ram"))
	if err != nil {
		return launch.Options{}, fmt.Errorf("invalid max-ram: %w", err)
	}
	minHeap, err := config.ParseMemorySize(viper.GetString("min-ram"))
	if err != nil {
		return launch.Options{}, fmt.Errorf("invalid min-ram: %w", err)
	}

	return launch.Options{
		JavaPath:         viper.GetString("java-path"),
		MinHeap:          minHeap,
		MaxHeap:          maxHeap,
		ExtraJvmArgs:     strings.Fields(viper.GetString("jvm-args")),
		ResolutionWidth:  viper.GetInt("width"),
		ResolutionHeight: viper.GetInt("height"),
		Fullscreen:       viper.GetBool("fullscreen"),
		AutoConnect:      viper.GetBool("auto-connect"),
		Detached:         viper.GetBool("detached"),
		JoinBaseURL:      viper.GetString("join-url"),
	}, nil
}
