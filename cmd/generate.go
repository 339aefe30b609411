package cmd

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/state"
)

var generateCount int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate modules for a bomb and print their solutions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ew, err := loadEdgework()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		host := state.NewHost(ew, log)
		fmt.Fprintf(out, gotext.Get("EDGEWORK")+"\n\n", ew)

		for i := range generateCount {
			m, err := host.AddModule(seed+int64(i), puzzle.Options{RevealDuration: cfg.RevealDuration()})
			if err != nil {
				return err
			}
			q, r := m.Session.FrontLabels()
			fmt.Fprintf(out, gotext.Get("MODULE_HEADER")+"  (seed %d, %s)\n", m.Number, m.Seed, m.UUID)
			fmt.Fprintf(out, "  %s\n", tui.FrontLabels(q, r))
			fmt.Fprintf(out, "  %s\n", m.Session.Line())
			fmt.Fprintf(out, "  %s\n\n", strings.Join(m.Session.Solution(), " → "))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of modules on the bomb")
	rootCmd.AddCommand(generateCmd)
}
