package cmdaccount

import (
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/cmd"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acc"},
	Short:   "Manage the accounts the launcher plays with",
}

func init() {
	cmd.Add(accountCmd)
}
