package cmdaccount

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Short:   "Remove a stored account",
	Aliases: []string{"rm", "delete"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		store, err := accounts.Load(layout.AccountsPath())
		if err != nil {
			shared.Exitln(err)
		}

		if err := store.Remove(args[0]); err != nil {
			shared.Exitln(err)
		}
		if err := store.Save(); err != nil {
			shared.Exitln(err)
		}

		fmt.Printf("%s removed successfully!\n", args[0])
		if store.Selected == "" {
			fmt.Println("No account is selected now; run 'lodestone account select' before launching.")
		}
	},
}

func init() {
	accountCmd.AddCommand(removeCmd)
}
