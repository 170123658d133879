package cmdaccount

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored accounts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		store, err := accounts.Load(layout.AccountsPath())
		if err != nil {
			shared.Exitln(err)
		}
		if len(store.Accounts) == 0 {
			fmt.Println("No accounts stored; run 'lodestone account add' first.")
			return
		}

		for i := range store.Accounts {
			account := &store.Accounts[i]
			marker := " "
			if account.UUID == store.Selected {
				marker = "*"
			}
			fmt.Printf("%s %s [%s] %s\n", marker, account.DisplayName, account.Kind, core.DashUUID(account.UUID))
		}
	},
}

func init() {
	accountCmd.AddCommand(listCmd)
}
