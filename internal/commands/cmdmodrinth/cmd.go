package cmdmodrinth

import (
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/cmd"
)

var modrinthCmd = &cobra.Command{
	Use:     "modrinth",
	Aliases: []string{"mr"},
	Short:   "Manage modrinth-based mods",
}

func init() {
	cmd.Add(modrinthCmd)
}
