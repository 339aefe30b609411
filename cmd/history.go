package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/game/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		rounds, err := db.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), tui.History(rounds, stats))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of rounds to show")
	rootCmd.AddCommand(historyCmd)
}
