package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the port-to-direction table and door labels for a seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := ruleset.Generate(seed)
		if !rules.Validate() {
			return fmt.Errorf("seed %d produced an invalid ruleset", seed)
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.Rules(rules))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
