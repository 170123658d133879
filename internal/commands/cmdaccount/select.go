package cmdaccount

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:     "select [name]",
	Short:   "Choose the account launches play with",
	Aliases: []string{"use"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		store, err := accounts.Load(layout.AccountsPath())
		if err != nil {
			shared.Exitln(err)
		}

		account, ok := store.Get(args[0])
		if !ok {
			account, err = searchAccounts(store, args[0])
			if err != nil {
				shared.Exitln(err)
			}
		}

		if err := store.Select(account.UUID); err != nil {
			shared.Exitln(err)
		}
		if err := store.Save(); err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("Selected account %s\n", account.DisplayName)
	},
}

func searchAccounts(store *accounts.Store, query string) (*accounts.Account, error) {
	found := store.Search(query)
	if len(found) == 0 {
		return nil, fmt.Errorf("no account matching %q", query)
	}
	if len(found) == 1 || viper.GetBool("non-interactive") {
		return found[0], nil
	}

	menu := wmenu.NewMenu("Choose a number:")
	menu.Option("Cancel", nil, false, nil)
	for i, account := range found {
		menu.Option(account.DisplayName+" ["+string(account.Kind)+"]", account, i == 0, nil)
	}

	var picked *accounts.Account
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return errors.New("account selection cancelled")
		}
		var ok bool
		picked, ok = menuRes[0].Value.(*accounts.Account)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		return nil
	})
	if err := menu.Run(); err != nil {
		return nil, err
	}
	return picked, nil
}

func init() {
	accountCmd.AddCommand(selectCmd)
}
