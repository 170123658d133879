package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/download"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/logging"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:     "sync [server]",
	Short:   "Download and validate everything a server needs",
	Aliases: []string{"dl"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

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

		if err := syncServer(cmd.Context(), layout, server); err != nil {
			shared.Exitln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Int("workers", download.DefaultWorkers, "Number of concurrent downloads")
	_ = viper.BindPFlag("sync.workers", syncCmd.Flags().Lookup("workers"))
}

// syncServer fetches the version manifest, libraries, loader modules, local
// mod jars and assets for one server, recording every validated file in the
// instance ledger. Assets run as a second phase since their plan is derived
// from the asset index the first phase downloads.
func syncServer(ctx context.Context, layout config.Layout, server *core.ServerEntry) error {
	fmt.Printf("Syncing %s (Minecraft %s)...\n", server.Name, server.MinecraftVersion)

	manifest, err := fileio.FetchVersionManifest(layout.VersionManifestPath(server.MinecraftVersion), server.MinecraftVersion)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(layout.ModsDir(server.ID), os.ModePerm); err != nil {
		return err
	}

	ledger, err := fileio.LoadLedger(layout.LedgerPath())
	if err != nil {
		return err
	}

	modConfig, err := fileio.LoadModConfig(layout.ModConfigPath(server.ID))
	if err != nil {
		return err
	}
	enabled := core.ResolveModules(server.Modules, modConfig)

	localMods, err := fileio.LoadAllLocalMods(layout.ModsDir(server.ID))
	if err != nil {
		return err
	}

	arch := core.ResolveArchitecture()
	rules := core.NewRuleContext(arch, core.FeatureSet{})

	items, err := download.ManifestPlan(manifest, arch, rules,
		layout.LibrariesDir(), layout.VersionJarPath(manifest.ID), layout.AssetIndexesDir())
	if err != nil {
		return err
	}
	moduleItems, err := download.ModulePlan(enabled, layout.LibrariesDir())
	if err != nil {
		return err
	}
	items = append(items, moduleItems...)
	items = append(items, download.LocalModPlan(localMods)...)

	logger := logging.ForArea(shared.NewLogger(), "download")
	dl := download.Downloader{
		Workers:  viper.GetInt("sync.workers"),
		Logger:   logger,
		Progress: download.NewBarProgress("files"),
		Ledger:   &ledger,
	}

	report := dl.Run(ctx, items)
	if err := report.Err(); err != nil {
		// Keep what did land recorded.
		_ = fileio.WriteLedger(&ledger)
		return err
	}

	assetID := manifest.AssetIndex.ID
	if assetID == "" {
		assetID = manifest.Assets
	}
	if assetID == "" {
		assetID = "legacy"
	}
	assetItems, err := download.AssetPlan(filepath.Join(layout.AssetIndexesDir(), assetID+".json"), layout.AssetObjectsDir())
	if err != nil {
		_ = fileio.WriteLedger(&ledger)
		return err
	}
	dl.Progress = download.NewBarProgress("assets")
	assetReport := dl.Run(ctx, assetItems)

	if err := fileio.WriteLedger(&ledger); err != nil {
		return err
	}
	if err := assetReport.Err(); err != nil {
		return err
	}

	fmt.Printf("Sync complete: %d file(s) fetched, %d already up to date.\n",
		report.Fetched+assetReport.Fetched, report.Skipped+assetReport.Skipped)
	return nil
}
