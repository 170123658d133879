package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

func pinMod(cmd *cobra.Command, args []string, pinned bool) {
	layout := shared.GetLayout()
	serverRef, _ := cmd.Flags().GetString("server")

	server, err := shared.ResolveServer(layout, serverRef)
	if err != nil {
		shared.Exitln(err)
	}

	metaPath, ok := fileio.FindLocalMod(layout.ModsDir(server.ID), args[0])
	if !ok {
		shared.Exitf("Mod %q is not installed on %s\n", args[0], server.ID)
	}

	mod, err := fileio.LoadLocalMod(metaPath)
	if err != nil {
		shared.Exitln(err)
	}
	mod.Pin = pinned

	if _, _, err := fileio.WriteLocalMod(&mod); err != nil {
		shared.Exitln(err)
	}

	message := "pinned"
	if !pinned {
		message = "unpinned"
	}
	fmt.Printf("%s %s successfully!\n", args[0], message)
}

// pinCmd represents the pin command
var pinCmd = &cobra.Command{
	Use:     "pin",
	Short:   "Pin a mod so it does not get updated automatically",
	Aliases: []string{"hold"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinMod(cmd, args, true)
	},
}

// unpinCmd represents the unpin command
var unpinCmd = &cobra.Command{
	Use:     "unpin",
	Short:   "Unpin a mod so it receives updates",
	Aliases: []string{"unhold"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinMod(cmd, args, false)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)

	pinCmd.Flags().String("server", "", "The server the mod is installed on (default: the main server)")
	unpinCmd.Flags().String("server", "", "The server the mod is installed on (default: the main server)")
}
