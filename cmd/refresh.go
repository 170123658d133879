package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the distribution manifest and cache the version manifests it references",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		dist, err := shared.LoadDistribution(layout)
		if err != nil {
			shared.Exitln(err)
		}

		for i := range dist.Servers {
			server := &dist.Servers[i]
			_, err := fileio.FetchVersionManifest(
				layout.VersionManifestPath(server.MinecraftVersion), server.MinecraftVersion)
			if err != nil {
				shared.Exitf("Error fetching version manifest for %s: %s\n", server.ID, err)
			}
			fmt.Printf("%s: Minecraft %s\n", server.ID, server.MinecraftVersion)
		}

		fmt.Println("Distribution refreshed!")
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
