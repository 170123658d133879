package cmdgithub

import (
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/cmd"
)

var githubCmd = &cobra.Command{
	Use:     "github",
	Aliases: []string{"gh"},
	Short:   "Manage projects released on GitHub",
}

func init() {
	cmd.Add(githubCmd)
}
