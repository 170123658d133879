package cmdaccount

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an account; offline by default, Microsoft when --access-token is given",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		store, err := accounts.Load(layout.AccountsPath())
		if err != nil {
			shared.Exitln(err)
		}

		name := args[0]
		accessToken, _ := cmd.Flags().GetString("access-token")

		var account accounts.Account
		if accessToken != "" {
			uuid, _ := cmd.Flags().GetString("uuid")
			if uuid == "" {
				shared.Exitln("--uuid is required when adding a Microsoft account")
			}
			xuid, _ := cmd.Flags().GetString("xuid")
			clientID, _ := cmd.Flags().GetString("client-id")
			account = accounts.Account{
				Kind:        core.AccountMicrosoft,
				DisplayName: name,
				UUID:        strings.ReplaceAll(strings.ToLower(uuid), "-", ""),
				AccessToken: accessToken,
				Xuid:        xuid,
				ClientID:    clientID,
			}
		} else {
			account = accounts.NewOfflineAccount(name)
		}

		store.Add(account)
		if err := store.Save(); err != nil {
			shared.Exitln(err)
		}

		fmt.Printf("Added %s account %s (%s)\n", account.Kind, account.DisplayName, core.DashUUID(account.UUID))
	},
}

func init() {
	accountCmd.AddCommand(addCmd)

	addCmd.Flags().String("access-token", "", "Minecraft access token from a completed Microsoft device-code flow")
	addCmd.Flags().String("uuid", "", "The account's profile uuid (required with --access-token)")
	addCmd.Flags().String("xuid", "", "The account's Xbox user id")
	addCmd.Flags().String("client-id", "", "The Azure application client id the token was issued for")
}
