package cmdurl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/internal/shared"
	"github.com/lodestone-launcher/lodestone/sources"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:     "add [name] [url]",
	Short:   "Add a mod from a direct download link",
	Aliases: []string{"install", "get"},
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		server, err := shared.ResolveServer(layout, serverRef)
		if err != nil {
			shared.Exitln(err)
		}

		// TODO: consider using colors for these warnings but those can have issues on windows
		force, err := cmd.Flags().GetBool("force")
		if !force && err == nil {
			dl, err := url.Parse(args[1])
			if err != nil {
				shared.Exitln("Failed to parse URL:", err)
			}
			var msg string
			if dl.Host == "www.github.com" || dl.Host == "github.com" {
				msg = "github add " + args[1]
			}
			if strings.HasSuffix(dl.Host, "modrinth.com") {
				msg = "modrinth add " + args[1]
			}
			if msg != "" {
				shared.Exitln("Consider using lodestone", msg, "instead; if you know what you are doing use --force to add this file without update metadata.")
			}
		}

		mod, err := sources.NewURLLocalMod(args[0], args[1])
		if err != nil {
			shared.Exitf("Failed to add file: %s\n", err)
		}

		if err := shared.InstallLocalMods(cmd.Context(), layout, server, []*core.LocalMod{mod}); err != nil {
			shared.Exitf("Failed to add file: %s\n", err)
		}

		fmt.Printf("File \"%s\" successfully added! (%s)\n", mod.Name, mod.FileName)
	},
}

func init() {
	urlCmd.AddCommand(installCmd)

	installCmd.Flags().Bool("force", false, "Add a file even if the download URL has a supported update source")
	installCmd.Flags().String("server", "", "The server to install the mod on (default: the main server)")
}
