package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/download"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/logging"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update [slug]",
	Short:   "Update a locally installed mod (or all of them) to the latest compatible version",
	Aliases: []string{"upgrade"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		server, err := shared.ResolveServer(layout, serverRef)
		if err != nil {
			shared.Exitln(err)
		}
		updateCtx := shared.UpdateContextFor(server)
		modsDir := layout.ModsDir(server.ID)

		if viper.GetBool("update.all") {
			fmt.Println("Reading metadata files...")
			mods, err := fileio.LoadAllLocalMods(modsDir)
			if err != nil {
				shared.Exitf("Failed to update all mods: %v\n", err)
			}

			fmt.Println("Checking for updates...")
			updatable, err := core.GetUpdatableMods(mods, updateCtx)
			if err != nil {
				shared.Exitln(err)
			}
			if len(updatable) == 0 {
				fmt.Println("All mods are up to date!")
				return
			}

			fmt.Println("Updates found:")
			oldJars := make(map[string]string)
			var updated []*core.LocalMod
			for _, data := range updatable {
				for _, mod := range data.Mods {
					fmt.Printf("  %s\n", mod.Name)
					oldJars[mod.Slug()] = mod.GetDestFilePath()
					updated = append(updated, mod)
				}
			}

			if !shared.PromptYesNo("Do you want to update? [Y/n]: ") {
				fmt.Println("Cancelled!")
				return
			}

			if err := core.UpdateMods(updatable); err != nil {
				shared.Exitln(err)
			}
			if err := persistUpdatedMods(cmd.Context(), layout, updated, oldJars); err != nil {
				shared.Exitln(err)
			}
			fmt.Println("Mods updated!")
			return
		}

		if len(args) < 1 || len(args[0]) == 0 {
			shared.Exitln("Must specify a valid mod, or use the --all flag!")
		}

		metaPath, ok := fileio.FindLocalMod(modsDir, args[0])
		if !ok {
			shared.Exitf("Mod %q is not installed on %s\n", args[0], server.ID)
		}
		mod, err := fileio.LoadLocalMod(metaPath)
		if err != nil {
			shared.Exitln(err)
		}
		if mod.Pin {
			shared.Exitln("Version is pinned; run the unpin command to allow updating")
		}

		oldJar := mod.GetDestFilePath()
		updatable, err := core.GetUpdatableMods([]*core.LocalMod{&mod}, updateCtx)
		if err != nil {
			shared.Exitln(err)
		}
		if len(updatable) == 0 {
			fmt.Printf("\"%s\" is already up to date!\n", mod.Name)
			return
		}
		if err := core.UpdateMods(updatable); err != nil {
			shared.Exitln(err)
		}
		if err := persistUpdatedMods(cmd.Context(), layout, []*core.LocalMod{&mod}, map[string]string{mod.Slug(): oldJar}); err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("\"%s\" updated!\n", mod.Name)
	},
}

// persistUpdatedMods rewrites the metadata of updated mods, drops jars the
// update renamed away, and fetches the new files.
func persistUpdatedMods(ctx context.Context, layout config.Layout, mods []*core.LocalMod, oldJars map[string]string) error {
	ledger, err := fileio.LoadLedger(layout.LedgerPath())
	if err != nil {
		return err
	}

	for _, mod := range mods {
		if _, _, err := fileio.WriteLocalMod(mod); err != nil {
			return err
		}
		if old := oldJars[mod.Slug()]; old != "" && old != mod.GetDestFilePath() {
			if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
				fmt.Printf("Warning: failed to remove old file %s: %s\n", old, err)
			}
			_ = os.Remove(old + ".disabled")
			_ = ledger.RemoveFile(old)
		}
	}

	dl := download.Downloader{
		Workers:  download.DefaultWorkers,
		Logger:   logging.ForArea(shared.NewLogger(), "download"),
		Progress: download.NewBarProgress("mods"),
		Ledger:   &ledger,
	}
	report := dl.Run(ctx, download.LocalModPlan(mods))
	if err := fileio.WriteLedger(&ledger); err != nil {
		return err
	}
	return report.Err()
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolP("all", "a", false, "Update all locally installed mods")
	_ = viper.BindPFlag("update.all", updateCmd.Flags().Lookup("all"))
	updateCmd.Flags().String("server", "", "The server the mods are installed on (default: the main server)")
}
