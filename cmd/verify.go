package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/download"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:     "verify",
	Short:   "Check every file the ledger records against its stored hash",
	Aliases: []string{"check"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()

		ledger, err := fileio.LoadLedger(layout.LedgerPath())
		if err != nil {
			shared.Exitln(err)
		}

		paths := ledger.SortedPaths()
		if len(paths) == 0 {
			fmt.Println("The ledger is empty; run 'lodestone sync' first.")
			return
		}

		prune := viper.GetBool("verify.prune")
		var ok, missing, mismatched int
		for _, path := range paths {
			absPath := ledger.ResolveLedgerPath(path)
			entry, found := ledger.Get(absPath)
			if !found {
				continue
			}

			if _, err := os.Stat(absPath); os.IsNotExist(err) {
				fmt.Printf("missing: %s\n", path)
				missing++
				if prune {
					_ = ledger.RemoveFile(absPath)
				}
				continue
			}

			hash, err := download.HashFile(absPath, ledger.EntryHashFormat(entry))
			if err != nil {
				shared.Exitf("Error hashing %s: %s\n", path, err)
			}
			if hash != entry.Hash {
				fmt.Printf("mismatch: %s\n", path)
				mismatched++
				continue
			}
			ok++
		}

		if prune && missing > 0 {
			if err := fileio.WriteLedger(&ledger); err != nil {
				shared.Exitln(err)
			}
		}

		fmt.Printf("%d file(s) verified, %d missing, %d mismatched.\n", ok, missing, mismatched)
		if mismatched > 0 {
			shared.Exitln("Some files did not match the ledger; run 'lodestone sync' to repair them.")
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Bool("prune", false, "Drop ledger entries whose files no longer exist")
	_ = viper.BindPFlag("verify.prune", verifyCmd.Flags().Lookup("prune"))
}
