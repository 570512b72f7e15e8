package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"agrimitra/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the baseline market prices into an empty ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := newApp(cfg, db, log).ledger.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d market prices\n", n)
		return nil
	},
}
