package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove",
	Short:   "Remove a locally installed mod, its jar and its stored settings",
	Aliases: []string{"delete", "uninstall", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		server, err := shared.ResolveServer(layout, serverRef)
		if err != nil {
			shared.Exitln(err)
		}

		targetMod := args[0]
		metaPath, ok := fileio.FindLocalMod(layout.ModsDir(server.ID), targetMod)
		if !ok {
			shared.Exitf("Mod %q is not installed on %s\n", targetMod, server.ID)
		}

		mod, err := fileio.LoadLocalMod(metaPath)
		if err != nil {
			shared.Exitln(err)
		}

		ledger, err := fileio.LoadLedger(layout.LedgerPath())
		if err != nil {
			shared.Exitln(err)
		}

		fmt.Println("Removing mod files...")
		jarPath := mod.GetDestFilePath()
		for _, path := range []string{jarPath, jarPath + ".disabled", metaPath} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				shared.Exitf("Failed to delete %s: %s\n", path, err)
			}
		}
		_ = ledger.RemoveFile(jarPath)

		modConfig, err := fileio.LoadModConfig(layout.ModConfigPath(server.ID))
		if err != nil {
			shared.Exitln(err)
		}
		if _, ok := modConfig[mod.Slug()]; ok {
			delete(modConfig, mod.Slug())
			if err := fileio.SaveModConfig(layout.ModConfigPath(server.ID), modConfig); err != nil {
				shared.Exitln(err)
			}
		}

		if err := fileio.WriteLedger(&ledger); err != nil {
			shared.Exitln(err)
		}

		fmt.Printf("%s removed successfully!\n", targetMod)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().String("server", "", "The server the mod is installed on (default: the main server)")
}
