package cmd

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the animals accepted by press commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, gotext.Get("LABELS_TITLE"))
		fmt.Fprint(out, tui.Labels(ruleset.Generate(seed).Labels(), 0))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
