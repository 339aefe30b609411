package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/engine/hex"
	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/renderer"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

var (
	boardRotate   int
	boardMirror   bool
	boardSolution bool
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Draw the animal board for a seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := ruleset.Generate(seed)
		opts := renderer.BoardOptions{Rotate: boardRotate, Mirror: boardMirror}

		if boardSolution {
			ew, err := loadEdgework()
			if err != nil {
				return err
			}
			s, err := puzzle.NewSession(rules, ew, puzzle.Options{ID: 1, Logger: log})
			if err != nil {
				return err
			}
			cells := s.Line().Cells()
			opts.Highlight = append([]hex.Hex(nil), cells[:]...)
		}

		fmt.Fprint(cmd.OutOrStdout(), tui.Board(rules, opts))
		return nil
	},
}

func init() {
	boardCmd.Flags().IntVar(&boardRotate, "rotate", 0, "Rotate the board by this many 60° steps")
	boardCmd.Flags().BoolVar(&boardMirror, "mirror", false, "Mirror the board top to bottom")
	boardCmd.Flags().BoolVar(&boardSolution, "solution", false, "Highlight a solution line for the given ports")
	rootCmd.AddCommand(boardCmd)
}
