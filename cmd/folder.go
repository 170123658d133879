package cmd

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// folderCmd represents the folder command
var folderCmd = &cobra.Command{
	Use:     "folder [server]",
	Short:   "Open the instance folder, or a server's game folder, in your file manager",
	Aliases: []string{"open"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		target := layout.InstanceDir
		if len(args) > 0 {
			server, err := shared.ResolveServer(layout, args[0])
			if err != nil {
				shared.Exitln(err)
			}
			target = layout.ServerDir(server.ID)
		}

		fmt.Println("Opening folder...")
		if err := open.Start(target); err != nil {
			fmt.Println("Opening folder failed, direct path:")
			fmt.Println(target)
		}
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
}
