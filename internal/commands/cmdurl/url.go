package cmdurl

import (
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/cmd"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Add mods from a direct download link, for sites that are not directly supported by lodestone",
}

func init() {
	cmd.Add(urlCmd)
}
