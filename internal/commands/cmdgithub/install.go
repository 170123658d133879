package cmdgithub

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/internal/shared"
	"github.com/lodestone-launcher/lodestone/sources"
)

var branchFlag string
var regexFlag string

func init() {
	githubCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&branchFlag, "branch", "", "The GitHub repository branch to retrieve releases for")
	installCmd.Flags().StringVar(&regexFlag, "regex", "", "The regular expression to match release assets against")
	installCmd.Flags().String("server", "", "The server to install the mod on (default: the main server)")
}

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:     "add [URL|slug]",
	Short:   "Add a project from a GitHub repository URL or slug",
	Aliases: []string{"install", "get"},
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		server, err := shared.ResolveServer(layout, serverRef)
		if err != nil {
			shared.Exitln(err)
		}

		if len(args) == 0 || len(args[0]) == 0 {
			shared.Exitln("You must specify a GitHub repository URL.")
		}
		slugOrUrl := args[0]

		mod, err := sources.NewGitHubLocalMod(slugOrUrl, branchFlag, regexFlag)
		if err != nil {
			shared.Exitf("Failed to add project: %s\n", err)
		}

		if err := shared.InstallLocalMods(cmd.Context(), layout, server, []*core.LocalMod{mod}); err != nil {
			shared.Exitf("Failed to add project: %s\n", err)
		}

		fmt.Printf("Project \"%s\" successfully added! (%s)\n", slugOrUrl, mod.FileName)
	},
}
